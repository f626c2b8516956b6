package zone

import (
	"net/netip"
	"strings"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
)

const (
	DefaultTTL      = 60
	CanonicalPrefix = "zt-"
)

// Member is one host on the overlay network as supplied by a membership source.
// Addresses may carry a "/prefix" suffix which is ignored.
type Member struct {
	ID        string
	Name      string
	Addresses []string
}

// BuildOptions modifies how MemberRecords synthesizes records.
type BuildOptions struct {
	TTL       uint32
	AliasIPv6 bool // Also emit AAAAs at the friendly name
}

// CanonicalName returns the zt-<id> name for a member ID, or an empty string if the ID
// cannot form a valid label.
func CanonicalName(id, domain string) string {
	label := CanonicalPrefix + strings.ToLower(strings.TrimSpace(id))
	if len(id) == 0 || dnsutil.ValidLabel(label) != nil {
		return ""
	}

	return label + "." + domain
}

// MemberRecords returns the address RRs for one member. Every IPv4 address yields an A at
// the canonical name and, if the member has a name, a second A at the friendly name. IPv6
// addresses only yield an AAAA at the canonical name unless opts.AliasIPv6 is set.
//
// The first bad ID, name or address aborts the build with a *BuildError. Names are checked
// again once the domain is appended as a short label can still make an over-long name.
func MemberRecords(m Member, domain string, opts BuildOptions) ([]dns.RR, error) {
	source := "member " + m.ID
	canonical := CanonicalName(m.ID, domain)
	if len(canonical) == 0 {
		return nil, &BuildError{Source: source, Token: m.ID, Reason: "Invalid member ID"}
	}
	if err := dnsutil.ValidHostname(canonical); err != nil {
		return nil, &BuildError{Source: source, Token: m.ID, Reason: err.Error()}
	}

	var alias string
	if len(m.Name) > 0 {
		n := strings.TrimSuffix(strings.ToLower(m.Name), ".")
		if err := dnsutil.ValidHostname(n); err != nil {
			return nil, &BuildError{Source: source, Token: m.Name, Reason: err.Error()}
		}
		alias = n + "." + domain
		if err := dnsutil.ValidHostname(alias); err != nil {
			return nil, &BuildError{Source: source, Token: m.Name, Reason: err.Error()}
		}
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	var rrs []dns.RR
	for _, a := range m.Addresses {
		addr, err := netip.ParseAddr(dnsutil.StripCIDR(strings.TrimSpace(a)))
		if err != nil || len(addr.Zone()) > 0 {
			return nil, &BuildError{Source: source, Token: a, Reason: "Invalid address"}
		}
		addr = addr.Unmap()
		rrs = append(rrs, dnsutil.NewAddressRR(canonical, addr, ttl))
		if len(alias) > 0 && (addr.Is4() || opts.AliasIPv6) {
			rrs = append(rrs, dnsutil.NewAddressRR(alias, addr, ttl))
		}
	}

	return rrs, nil
}
