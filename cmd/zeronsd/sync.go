package main

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/sync/errgroup"

	"github.com/markdingo/zeronsd/hosts"
	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/zone"
)

// fetch gathers both sources for one pass. The membership fetch and the hosts file read
// run concurrently and the first error wins.
func (t *zeronsd) fetch(ctx context.Context) ([]zone.Member, *hosts.Table, error) {
	var (
		members []zone.Member
		table   *hosts.Table
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = t.source.Members(gctx)
		if err != nil {
			err = fmt.Errorf("%s: %w", t.source, err)
		}
		return
	})

	if !t.cfg.noHosts {
		g.Go(func() (err error) {
			table, err = hosts.Load(t.cfg.hostsFile, t.cfg.domain)
			return
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, nil, err
	}

	return members, table, nil
}

// sync runs one complete pass: fetch, configure and publish. Any failure is reported as
// a warning and the previous Snapshot stays in service. Returns true if the pass
// committed.
func (t *zeronsd) sync(why string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.fetchTimeout)
	defer cancel()

	prev := t.authority.Current()
	members, table, err := t.fetch(ctx)
	if err == nil {
		err = t.authority.Configure(members, table)
	}

	t.syncMu.Lock()
	defer t.syncMu.Unlock()
	t.syncs.passes++
	t.syncs.lastError = err
	if err != nil {
		t.syncs.failures++
		warning(err, why, "sync failed, previous zone retained")
		return false
	}

	snap := t.authority.Current()
	t.syncs.lastSerial = snap.Serial
	t.syncs.lastRecords = len(snap.Records)
	if sameRecords(prev.Records, snap.Records) {
		log.Minorf("%s sync: records unchanged, serial %d->%d", why, prev.Serial, snap.Serial)
		return true
	}

	t.syncs.changes++
	log.Majorf("%s sync: serial %d->%d records %d", why, prev.Serial, snap.Serial, len(snap.Records))
	log.Minorf("%s sync: members %d (%d RRs) hosts %d (%d RRs) pruned %d",
		why, len(members), snap.MemberRecords, table.Len(), snap.HostsRecords, snap.Pruned)
	if log.IfDebug() {
		snap.Dump(log.Out())
	}

	return true
}

// sameRecords compares two record sets in State order. The serial advances on every
// upsert so it cannot tell an unchanged zone from a changed one.
func sameRecords(a, b []dns.RR) bool {
	if len(a) != len(b) {
		return false
	}
	for ix := range a {
		if !dns.IsDuplicate(a[ix], b[ix]) || a[ix].Header().Ttl != b[ix].Header().Ttl {
			return false
		}
	}

	return true
}

// watchForSyncs is the only caller of sync() once Run() has started, so passes never
// overlap. It exits when Done() is closed.
func (t *zeronsd) watchForSyncs(interval time.Duration, hostsChanged <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.Done():
			return

		case <-ticker.C:
			t.sync("Periodic")

		case <-t.forceSync:
			t.sync("Forced")

		case <-hostsChanged:
			t.sync("Hosts change")
		}
	}
}

// requestSync asks the sync loop for a pass. Requests coalesce if one is already pending.
func (t *zeronsd) requestSync() bool {
	select {
	case t.forceSync <- struct{}{}:
		return true
	default:
	}

	return false
}
