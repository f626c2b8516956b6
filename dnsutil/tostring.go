package dnsutil

import (
	"fmt"

	"github.com/miekg/dns"
)

// TypeToString is dns.TypeToString with a numeric fallback for unknown types.
func TypeToString(t uint16) string {
	if s, ok := dns.TypeToString[t]; ok {
		return s
	}

	return fmt.Sprintf("T-%d", t)
}

// ClassToString is dns.ClassToString with a numeric fallback.
func ClassToString(c uint16) string {
	if s, ok := dns.ClassToString[c]; ok {
		return s
	}

	return fmt.Sprintf("C-%d", c)
}

// RcodeToString is dns.RcodeToString with a numeric fallback.
func RcodeToString(r int) string {
	if s, ok := dns.RcodeToString[r]; ok {
		return s
	}

	return fmt.Sprintf("r-%d", r)
}
