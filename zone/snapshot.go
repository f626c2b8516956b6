package zone

import (
	"io"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/database"
	"github.com/markdingo/zeronsd/dnsutil"
)

// SOA timers. The minimum/negative TTL tracks the record TTL.
const (
	soaRefresh = 3600
	soaRetry   = 600
	soaExpire  = 86400
)

// Snapshot is the published, read-only view of one configure pass. Any number of
// go-routines may share a Snapshot but none may modify it. Lookups return copies.
type Snapshot struct {
	Domain  string
	Serial  uint32
	SOA     *dns.SOA
	NS      []*dns.NS
	Records []dns.RR // In State order

	MemberRecords int // Built by the pass which produced this Snapshot
	HostsRecords  int
	Pruned        int

	reverse bool
	db      *database.Database
}

func newSnapshot(domain string, state *State, opts *Options) *Snapshot {
	ttl := opts.TTL
	snap := &Snapshot{
		Domain:  domain,
		Serial:  state.Serial(),
		Records: state.Records(),
		reverse: opts.Reverse,
		db:      database.NewDatabase(),
	}

	snap.SOA = &dns.SOA{
		Hdr:     dns.RR_Header{Name: domain, Rrtype: dns.TypeSOA, Class: dns.ClassINET, Ttl: ttl},
		Ns:      opts.Nameservers[0],
		Mbox:    opts.Mbox,
		Serial:  snap.Serial,
		Refresh: soaRefresh,
		Retry:   soaRetry,
		Expire:  soaExpire,
		Minttl:  ttl,
	}
	snap.db.AddRR(snap.SOA)

	for _, ns := range opts.Nameservers {
		rr := &dns.NS{
			Hdr: dns.RR_Header{Name: domain, Rrtype: dns.TypeNS, Class: dns.ClassINET, Ttl: ttl},
			Ns:  ns,
		}
		snap.NS = append(snap.NS, rr)
		snap.db.AddRR(rr)
	}

	for _, rr := range snap.Records {
		snap.db.AddRR(rr)
		if snap.reverse {
			if ptr := dnsutil.DeducePtr(rr); ptr != nil {
				snap.db.AddRR(ptr)
			}
		}
	}

	return snap
}

// InZone returns true if qName is the apex or below it.
func (t *Snapshot) InZone(qName string) bool {
	return dnsutil.InDomain(qName, t.Domain)
}

// IsApex returns true if qName is the zone domain.
func (t *Snapshot) IsApex(qName string) bool {
	return dns.CanonicalName(qName) == t.Domain
}

// InReverse returns true if PTRs are being served and qName is a reverse name.
func (t *Snapshot) InReverse(qName string) bool {
	return t.reverse && dnsutil.IsReverseName(qName)
}

// Lookup returns copies of the RRs matching the question. nxDomain is true if no RRs of
// any type exist at or below qName.
func (t *Snapshot) Lookup(qClass, qType uint16, qName string) ([]dns.RR, bool) {
	return t.db.LookupRR(qClass, qType, qName)
}

// LookupAll returns copies of every RR at qName regardless of type.
func (t *Snapshot) LookupAll(qClass uint16, qName string) ([]dns.RR, bool) {
	return t.db.LookupAll(qClass, qName)
}

// Count returns the number of RRs available to Lookup, including SOA, NS and PTRs.
func (t *Snapshot) Count() int {
	return t.db.Count()
}

// Dump writes the served RRs to w for debugging.
func (t *Snapshot) Dump(w io.Writer) {
	t.db.Dump(w)
}
