package zone

import (
	"fmt"
	"sync"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
	"github.com/markdingo/zeronsd/hosts"
	"github.com/markdingo/zeronsd/log"
)

// Options are fixed at NewAuthority time.
type Options struct {
	TTL         uint32   // Defaults to DefaultTTL
	AliasIPv6   bool     // See BuildOptions
	Prune       bool     // Remove records not produced by the current pass
	Reverse     bool     // Serve PTRs deduced from every address record
	Nameservers []string // Apex NS targets. Defaults to ns1.<domain>
	Mbox        string   // SOA contact. Defaults to hostmaster.<domain>
}

// Authority owns the zone State and publishes a new Snapshot after every successful
// Configure. There is one writer, the caller of Configure, and any number of readers
// calling Current.
type Authority struct {
	domain string
	opts   Options

	cfgMu sync.Mutex // Serializes Configure passes
	state *State     // Only touched while holding cfgMu

	mu      sync.RWMutex // Protects current
	current *Snapshot
}

// NewAuthority creates an Authority for domain, which must be absolute, with the serial
// starting at serial. An initial Snapshot containing only the SOA and NS is published.
func NewAuthority(domain string, serial uint32, opts Options) (*Authority, error) {
	if err := checkDomain(domain); err != nil {
		return nil, &DomainError{Domain: domain, Err: err}
	}
	domain = dns.CanonicalName(domain)

	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	opts.Nameservers = append([]string{}, opts.Nameservers...)
	if len(opts.Nameservers) == 0 {
		opts.Nameservers = append(opts.Nameservers, "ns1."+domain)
	}
	for ix, ns := range opts.Nameservers {
		if err := dnsutil.ValidHostname(ns); err != nil {
			return nil, fmt.Errorf("Invalid nameserver: %w", err)
		}
		opts.Nameservers[ix] = dns.CanonicalName(dns.Fqdn(ns))
	}
	if len(opts.Mbox) == 0 {
		opts.Mbox = "hostmaster." + domain
	}
	opts.Mbox = dns.CanonicalName(dns.Fqdn(opts.Mbox))

	t := &Authority{domain: domain, opts: opts, state: NewState(serial)}
	t.current = newSnapshot(domain, t.state, &t.opts)

	return t, nil
}

func (t *Authority) Domain() string {
	return t.domain
}

// Current returns the most recently published Snapshot. Never nil.
func (t *Authority) Current() *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.current
}

// Configure runs one pass: member records then hosts records are built, upserted into a
// copy of the current State and published as a new Snapshot. If any record fails to
// build nothing is changed. A concurrent call waits for the running pass to complete.
func (t *Authority) Configure(members []Member, table *hosts.Table) error {
	t.cfgMu.Lock()
	defer t.cfgMu.Unlock()

	return t.configure(members, table)
}

// TryConfigure is Configure except that it returns ErrBusy rather than wait.
func (t *Authority) TryConfigure(members []Member, table *hosts.Table) error {
	if !t.cfgMu.TryLock() {
		return ErrBusy
	}
	defer t.cfgMu.Unlock()

	return t.configure(members, table)
}

func (t *Authority) configure(members []Member, table *hosts.Table) (err error) {
	bo := BuildOptions{TTL: t.opts.TTL, AliasIPv6: t.opts.AliasIPv6}
	var rrs []dns.RR
	for _, m := range members {
		mrrs, err := MemberRecords(m, t.domain, bo)
		if err != nil {
			return err
		}
		rrs = append(rrs, mrrs...)
	}
	memberCount := len(rrs)

	hrrs, err := HostsRecords(table, t.domain, t.opts.TTL)
	if err != nil {
		return err
	}
	rrs = append(rrs, hrrs...)

	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			err = ie
		}
	}()

	state := t.state.Clone()
	for _, rr := range rrs {
		state.Upsert(rr)
	}

	var pruned int
	if t.opts.Prune {
		produced := NewState(0)
		for _, rr := range rrs {
			produced.Upsert(rr)
		}
		for _, rr := range state.Records() {
			if !produced.Contains(rr) {
				state.Remove(rr)
				pruned++
				log.Debugf("Pruned %s", dnsutil.PrettyRR(rr))
			}
		}
	}

	snap := newSnapshot(t.domain, state, &t.opts)
	snap.MemberRecords = memberCount
	snap.HostsRecords = len(hrrs)
	snap.Pruned = pruned

	t.mu.Lock()
	t.state = state
	t.current = snap
	t.mu.Unlock()

	return nil
}
