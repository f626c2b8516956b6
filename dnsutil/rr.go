package dnsutil

import (
	"net/netip"

	"github.com/miekg/dns"
)

// NewAddressRR returns an A for ipv4 addresses (including ipv4-mapped ipv6 addresses) or
// an AAAA otherwise. The name is used verbatim so it should already be canonical.
func NewAddressRR(name string, addr netip.Addr, ttl uint32) dns.RR {
	addr = addr.Unmap()
	if addr.Is4() {
		rr := new(dns.A)
		rr.Hdr = dns.RR_Header{Name: name, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: ttl}
		b := addr.As4()
		rr.A = b[:]
		return rr
	}

	rr := new(dns.AAAA)
	rr.Hdr = dns.RR_Header{Name: name, Rrtype: dns.TypeAAAA, Class: dns.ClassINET, Ttl: ttl}
	b := addr.As16()
	rr.AAAA = b[:]

	return rr
}

// AddressOf extracts the address from an A or AAAA. ok is false for all other types.
func AddressOf(rr dns.RR) (addr netip.Addr, ok bool) {
	switch rrt := rr.(type) {
	case *dns.A:
		addr, ok = netip.AddrFromSlice(rrt.A.To4())
	case *dns.AAAA:
		addr, ok = netip.AddrFromSlice(rrt.AAAA.To16())
	}

	return
}

// DeducePtr converts an A or AAAA into the matching PTR. A nil return means the RR was
// not an address record.
func DeducePtr(rr dns.RR) *dns.PTR {
	addr, ok := AddressOf(rr)
	if !ok {
		return nil
	}
	ptr := new(dns.PTR)
	ptr.Hdr = dns.RR_Header{
		Name:   ReverseName(addr),
		Rrtype: dns.TypePTR,
		Class:  rr.Header().Class,
		Ttl:    rr.Header().Ttl,
	}
	ptr.Ptr = rr.Header().Name

	return ptr
}
