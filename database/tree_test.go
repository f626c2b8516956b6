package database

import (
	"strings"
	"testing"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/mock"
)

func TestAddRR(t *testing.T) {
	db := NewDatabase()
	if !db.AddRR(newRR("zt-abc.domain. IN A 10.0.0.1")) {
		t.Error("Expected Add to work")
	}
	if db.AddRR(newRR("ZT-ABC.domain. 300 IN A 10.0.0.1")) {
		t.Error("Expected duplicate Add to fail regardless of case and TTL")
	}
	if db.Count() != 1 {
		t.Error("Count should be one, not", db.Count())
	}
	db.AddRR(newRR("zt-abc.domain. IN A 10.0.0.2"))
	db.AddRR(newRR("zt-abc.domain. IN AAAA fd00::1"))
	db.AddRR(newRR("laptop.domain. IN A 10.0.0.1"))
	db.AddRR(newRR("1.0.0.10.in-addr.arpa. IN PTR zt-abc.domain."))
	if db.Count() != 5 {
		t.Error("Count should be five, not", db.Count())
	}
}

func TestLookup(t *testing.T) {
	testCases := []struct {
		qClass  uint16
		qType   uint16
		qName   string
		arCount int
		nx      bool
	}{
		{dns.ClassHESIOD, dns.TypeTXT, "domain.", 0, true},
		{dns.ClassINET, dns.TypeA, "zt-abc.domain.", 2, false},
		{dns.ClassINET, dns.TypeA, "ZT-ABC.Domain.", 2, false},
		{dns.ClassINET, dns.TypeAAAA, "zt-abc.domain.", 1, false},
		{dns.ClassINET, dns.TypeMX, "zt-abc.domain.", 0, false},
		{dns.ClassINET, dns.TypeA, "domain.", 0, false}, // Empty non-terminal
		{dns.ClassINET, dns.TypeSOA, "domain.", 1, false},
		{dns.ClassINET, dns.TypeA, "nothere.domain.", 0, true},
		{dns.ClassINET, dns.TypeA, "a.zt-abc.domain.", 0, true},
		{dns.ClassINET, dns.TypeA, "other.", 0, true},
		{dns.ClassINET, dns.TypePTR, "1.0.0.10.in-addr.arpa.", 1, false},
		{dns.ClassINET, dns.TypePTR, "0.0.10.in-addr.arpa.", 0, false},
		{dns.ClassINET, dns.TypePTR, "2.0.0.10.in-addr.arpa.", 0, true},
		{dns.ClassCHAOS, dns.TypeTXT, "version.server.", 1, false},
	}

	db := NewDatabase()
	ar, nx := db.LookupRR(dns.ClassINET, dns.TypeA, "a.")
	if len(ar) > 0 || !nx {
		t.Error("Lookup of empty DB should be NXDomain", ar, nx)
	}
	db.AddRR(newRR("domain. IN SOA ns1.domain. hostmaster.domain. 1 3600 600 86400 60"))
	db.AddRR(newRR("zt-abc.domain. IN A 10.0.0.1"))
	db.AddRR(newRR("zt-abc.domain. IN A 10.0.0.2"))
	db.AddRR(newRR("zt-abc.domain. IN AAAA fd00::1"))
	db.AddRR(newRR("1.0.0.10.in-addr.arpa. IN PTR zt-abc.domain."))
	db.AddRR(newRR("version.server. CH TXT \"1.0\""))

	for ix, tc := range testCases {
		ar, nx = db.LookupRR(tc.qClass, tc.qType, tc.qName)
		if len(ar) != tc.arCount {
			t.Error(ix, tc.qName, "Wrong rrset count", len(ar), tc.arCount)
		}
		if nx != tc.nx {
			t.Error(ix, tc.qName, "Wrong NXDomain of", nx)
		}
	}
}

func TestLookupAll(t *testing.T) {
	db := NewDatabase()
	db.AddRR(newRR("domain. IN NS ns1.domain."))
	db.AddRR(newRR("domain. IN SOA ns1.domain. hostmaster.domain. 1 3600 600 86400 60"))
	db.AddRR(newRR("domain. IN A 10.0.0.9"))

	ar, nx := db.LookupAll(dns.ClassINET, "domain.")
	if nx || len(ar) != 3 {
		t.Fatal("Expected three RRs", nx, ar)
	}
	exp := []uint16{dns.TypeA, dns.TypeNS, dns.TypeSOA}
	for ix, rr := range ar {
		if rr.Header().Rrtype != exp[ix] {
			t.Error(ix, "Out of order", rr)
		}
	}

	_, nx = db.LookupAll(dns.ClassINET, "x.domain.")
	if !nx {
		t.Error("Expected NXDomain for missing name")
	}
}

func TestImmutable(t *testing.T) {
	db := NewDatabase()
	rr1 := newRR("a.b.c. IN A 1.2.3.4")
	db.AddRR(rr1)
	rr1.Header().Ttl = 53
	ans, _ := db.LookupRR(dns.ClassINET, dns.TypeA, "a.b.c.")
	for _, a := range ans {
		if a.Header().Ttl == 53 {
			t.Error("Was able to modify in-DB copy of RR", ans)
		}
		a.Header().Ttl = 55
	}

	ans, _ = db.LookupRR(dns.ClassINET, dns.TypeA, "a.b.c.")
	for _, a := range ans {
		if a.Header().Ttl == 55 {
			t.Error("Was able to modify returned copy of RR", ans)
		}
	}
}

func TestDump(t *testing.T) {
	db := NewDatabase()
	db.AddRR(newRR("a.b.c. IN A 1.2.3.4"))
	var w mock.IOWriter
	db.Dump(&w)
	if !strings.Contains(w.String(), "Database Dump 1") || !strings.Contains(w.String(), "1.2.3.4") {
		t.Error("Dump output unexpected", w.String())
	}
}

// Allow newRR in function calls by dealing with errors locally
func newRR(s string) dns.RR {
	rr, err := dns.NewRR(s)
	if err != nil {
		panic("newRR Setup error with: " + s)
	}

	return rr
}
