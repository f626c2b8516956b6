package dnsutil

import (
	"strings"
)

// StripCIDR removes a trailing "/prefix-length" from an address string, leaving the
// address exactly as written, e.g. "fe80::abcd/128" becomes "fe80::abcd". No attempt is
// made to validate either part; strings without a slash are returned unchanged.
func StripCIDR(s string) string {
	if ix := strings.IndexByte(s, '/'); ix >= 0 {
		return s[:ix]
	}

	return s
}
