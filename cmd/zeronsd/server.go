package main

import (
	"sync"
	"sync/atomic"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
	"github.com/markdingo/zeronsd/zone"
)

// server answers on one network/address pair. Queries never hold a reference to the
// Authority's state; each one asks for the current Snapshot and answers entirely from it,
// so a sync pass that commits mid-query has no effect on that query.
type server struct {
	cfg        *config
	authority  *zone.Authority
	rrlHandler *rrl.RRL // nil disables rate limiting

	network string
	address string

	miekg *dns.Server

	statsMu sync.Mutex // Guards stats. ServeDNS adds, statsReport copies and resets
	stats   serverStats

	cookieSecrets [2]uint64
}

func newServer(cfg *config, authority *zone.Authority, rrlHandler *rrl.RRL, network, address string) *server {
	if len(network) == 0 {
		network = dnsutil.UDPNetwork
	}
	t := &server{
		cfg:        cfg,
		authority:  authority,
		rrlHandler: rrlHandler,
		network:    network,
		address:    address,
	}

	t.miekg = &dns.Server{Net: network, Addr: address, ReusePort: true, Handler: t}

	// A cookie-only query has qdcount==0 which miekg rejects before ServeDNS sees it.
	t.miekg.MsgAcceptFunc = func(dh dns.Header) dns.MsgAcceptAction {
		return t.customMsgAcceptFunc(dh)
	}

	return t
}

// startServer returns once srv is accepting queries or its listen has failed. A server
// which fails after it started is logged and counted out of the WaitGroup.
func (t *zeronsd) startServer(srv *server) error {
	var up atomic.Bool
	started := make(chan error, 1)
	srv.miekg.NotifyStartedFunc = func() {
		up.Store(true)
		started <- nil
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		err := srv.miekg.ListenAndServe()
		switch {
		case err == nil:
		case up.Load():
			warning(err, srv.network, srv.address, "server exited")
		default:
			started <- err
		}
	}()

	return <-started
}

func (t *server) stop() {
	t.miekg.Shutdown()
}

func (t *server) addStats(from *serverStats) {
	t.statsMu.Lock()
	t.stats.add(from)
	t.statsMu.Unlock()
}

// statsCopy returns the accumulated stats, zeroing them if reset is true.
func (t *server) statsCopy(reset bool) serverStats {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	s := t.stats
	if reset {
		t.stats = serverStats{}
	}

	return s
}

// addAcceptError counts a message rejected by the accept func before ServeDNS.
func (t *server) addAcceptError() {
	t.statsMu.Lock()
	t.stats.gen.badRequest++
	t.statsMu.Unlock()
}
