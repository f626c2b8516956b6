package zone

import (
	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
	"github.com/markdingo/zeronsd/hosts"
)

// HostsRecords returns one address RR per address/name pair in table order. A nil table
// produces no records. Names which fall outside domain cannot be served by this zone and
// are reported as a *BuildError.
func HostsRecords(table *hosts.Table, domain string, ttl uint32) ([]dns.RR, error) {
	if table == nil {
		return nil, nil
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}

	var rrs []dns.RR
	for _, addr := range table.Addrs() {
		for _, name := range table.Names(addr) {
			if !dnsutil.InDomain(name, domain) {
				return nil, &BuildError{Source: "hosts " + addr.String(), Token: name,
					Reason: "Name outside of " + domain}
			}
			if err := dnsutil.ValidHostname(name); err != nil {
				return nil, &BuildError{Source: "hosts " + addr.String(), Token: name,
					Reason: err.Error()}
			}
			rrs = append(rrs, dnsutil.NewAddressRR(dns.CanonicalName(name), addr, ttl))
		}
	}

	return rrs, nil
}
