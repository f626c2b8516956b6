package dnsutil

import (
	"errors"
	"testing"

	"github.com/miekg/dns"
)

func TestPrettyRR(t *testing.T) {
	testCases := []struct{ rr, expect string }{
		{"a.domain. 60 IN A 10.0.0.1", "a.domain. A 60 10.0.0.1"},
		{"a.domain. 30 IN AAAA fe80::1", "a.domain. AAAA 30 fe80::1"},
		{"1.0.0.10.in-addr.arpa. 60 IN PTR a.domain.", "1.0.0.10.in-addr.arpa. PTR 60 a.domain."},
		{"domain. 60 IN NS ns1.domain.", "domain. NS 60 ns1.domain."},
		{"domain. 60 IN SOA ns1.domain. hostmaster.domain. 7 3600 600 86400 60",
			"domain. SOA 60 ns1.domain. hostmaster.domain. 7"},
	}

	for ix, tc := range testCases {
		rr, err := dns.NewRR(tc.rr)
		if err != nil {
			t.Fatal(ix, "Setup error", err)
		}
		got := PrettyRR(rr)
		if got != tc.expect {
			t.Error(ix, "Got", got, "Exp", tc.expect)
		}
	}
}

func TestToString(t *testing.T) {
	if TypeToString(dns.TypeA) != "A" || TypeToString(65000) != "T-65000" {
		t.Error("TypeToString", TypeToString(65000))
	}
	if ClassToString(dns.ClassCHAOS) != "CH" || ClassToString(999) != "C-999" {
		t.Error("ClassToString", ClassToString(999))
	}
	if RcodeToString(dns.RcodeNameError) != "NXDOMAIN" || RcodeToString(4000) != "r-4000" {
		t.Error("RcodeToString", RcodeToString(4000))
	}
}

func TestShortenNetError(t *testing.T) {
	base := errors.New("Get \"http://x\": dial tcp 127.0.0.1:1: connect: connection refused")
	err := ShortenNetError(base)
	if err.Error() != "Connection refused" {
		t.Error("Wrong short form", err)
	}
	if !errors.Is(err, base) {
		t.Error("Shortened error should unwrap to the original")
	}

	other := errors.New("something else")
	if ShortenNetError(other) != other {
		t.Error("Unrelated error should be returned unchanged")
	}
	if ShortenNetError(nil) != nil {
		t.Error("nil should stay nil")
	}
}
