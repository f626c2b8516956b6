package dnsutil

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

const hexDigits = "0123456789abcdef"

// ReverseName returns the fully qualified in-addr.arpa or ip6.arpa name for addr, or an
// empty string for the zero Addr.
func ReverseName(addr netip.Addr) string {
	if !addr.IsValid() {
		return ""
	}
	addr = addr.Unmap()

	var b strings.Builder
	if addr.Is4() {
		a4 := addr.As4()
		for ix := 3; ix >= 0; ix-- {
			b.WriteString(strconv.Itoa(int(a4[ix])))
			b.WriteByte('.')
		}
		return strings.TrimSuffix(b.String(), ".") + V4Suffix
	}

	a16 := addr.As16()
	for ix := 15; ix >= 0; ix-- {
		b.WriteByte(hexDigits[a16[ix]&0xf])
		b.WriteByte('.')
		b.WriteByte(hexDigits[a16[ix]>>4])
		b.WriteByte('.')
	}

	return strings.TrimSuffix(b.String(), ".") + V6Suffix
}

// IsReverseName returns true if qName is within either reverse tree.
func IsReverseName(qName string) bool {
	qName = dns.CanonicalName(qName)

	return strings.HasSuffix(qName, V4Suffix) || strings.HasSuffix(qName, V6Suffix)
}
