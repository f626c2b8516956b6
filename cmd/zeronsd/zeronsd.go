package main

import (
	"crypto/rand"
	"os"
	"sync"
	"time"

	"github.com/markdingo/rrl"

	"github.com/markdingo/zeronsd/dnsutil"
	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/member"
	"github.com/markdingo/zeronsd/zone"
)

// The zeronsd container exists so that most of the "main" functionality can be delegated
// to support functions and help keep the flow of main() clean.
type zeronsd struct {
	cfg *config

	done      chan struct{} // All collaborative go-routines should monitor - see Done()
	forceSync chan struct{} // Tell the sync loop to run a pass now
	sig       chan os.Signal

	source     member.Source // Set by ValidateCommandLineOptions
	authority  *zone.Authority
	rrlHandler *rrl.RRL // nil unless rrl is active

	wg      sync.WaitGroup // For all servers started
	servers []*server

	startTime time.Time
	statsTime time.Time // Last time stats were reset

	syncMu sync.Mutex
	syncs  syncStats
}

func newZeronsd(cfg *config) *zeronsd {
	t := &zeronsd{
		cfg:       cfg,
		done:      make(chan struct{}),
		forceSync: make(chan struct{}, 1),
		sig:       make(chan os.Signal, 1),
		startTime: time.Now(),
	}
	if t.cfg == nil {
		t.cfg = newConfig()
	}
	t.statsTime = t.startTime

	return t
}

// Done is the go idiomatic way to tell collaborative go-routines to exit. All such
// go-routines should include a "case <-zeronsd.Done(): return" in their select loop.
func (t *zeronsd) Done() <-chan struct{} {
	return t.done
}

// newAuthority creates the zone.Authority from the validated config. It starts out
// serving only the apex until the first sync pass succeeds.
func (t *zeronsd) newAuthority() (err error) {
	t.authority, err = zone.NewAuthority(t.cfg.domain, t.cfg.serial, zone.Options{
		TTL:         t.cfg.TTLAsSecs,
		AliasIPv6:   t.cfg.aliasIPv6,
		Prune:       t.cfg.prune,
		Reverse:     t.cfg.reverse,
		Nameservers: t.cfg.nameservers,
	})
	if err != nil {
		return err
	}

	snap := t.authority.Current()
	t.syncs.lastSerial = snap.Serial
	log.Major("Zone Authority: ", t.authority.Domain(), " serial ", snap.Serial)
	log.Minor("Member source: ", t.source)

	return nil
}

// Open Listen sockets and start servers. Does not return until all servers have started
// or a fatal error is detected.
//
// The cookie secret is a cryptographically strong random value shared by all servers in
// this process. Anycast peers would need a configured secret.
func (t *zeronsd) startServers() {
	var cookieSecrets [2]uint64
	b := make([]byte, 16) // Two uint64s as needed by siphash-2-4
	rand.Read(b)
	for ix := 0; ix < 16; ix = ix + 2 {
		cookieSecrets[0] <<= 8
		cookieSecrets[1] <<= 8
		cookieSecrets[0] |= uint64(b[ix])
		cookieSecrets[1] |= uint64(b[ix+1])
	}

	for _, network := range []string{dnsutil.UDPNetwork, dnsutil.TCPNetwork} {
		for _, addr := range t.cfg.listen {
			srv := newServer(t.cfg, t.authority, t.rrlHandler, network, addr)
			srv.cookieSecrets = cookieSecrets
			err := t.startServer(srv)
			if err != nil {
				fatal(err)
			}
			t.servers = append(t.servers, srv)
			log.Major("Listen on: ", srv.network, " ", srv.address)
		}
	}
}

// Stop all servers and only return when they have all exited
func (t *zeronsd) stopServers() {
	for _, srv := range t.servers {
		srv.stop()
	}
	t.wg.Wait()
}
