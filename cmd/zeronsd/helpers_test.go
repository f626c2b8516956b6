package main

import (
	"strings"
	"testing"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/hosts"
	"github.com/markdingo/zeronsd/zone"
)

const testDomain = "zt.example."

var testMembers = []zone.Member{
	{ID: "8056c2e21c", Name: "laptop", Addresses: []string{"10.1.2.3/24", "fd00::1"}},
	{ID: "efcc1b0947", Addresses: []string{"fd00::2"}},
}

const testHosts = `
192.0.2.9	printer  # shared
`

func setQuestion(qClass, qType uint16, qName string) *dns.Msg {
	m := new(dns.Msg)
	m.Id = 1
	m.Question = append(m.Question, dns.Question{Name: qName, Qtype: qType, Qclass: qClass})

	return m
}

func newRR(s string) dns.RR {
	rr, err := dns.NewRR(s)
	if err != nil {
		panic("Test setup error with dns.NewRR: " + err.Error())
	}

	return rr
}

// newTestAuthority returns an Authority for testDomain which has been configured with
// testMembers and testHosts.
func newTestAuthority(t *testing.T, reverse bool) *zone.Authority {
	t.Helper()
	auth, err := zone.NewAuthority(testDomain, 1, zone.Options{Reverse: reverse})
	if err != nil {
		t.Fatal("Setup error", err)
	}
	table, err := hosts.Parse(strings.NewReader(testHosts), "test", testDomain)
	if err != nil {
		t.Fatal("Setup error", err)
	}
	err = auth.Configure(testMembers, table)
	if err != nil {
		t.Fatal("Setup error", err)
	}

	return auth
}

// newTestConfig returns a config which has been through validation without touching the
// network or the file system.
func newTestConfig() *config {
	cfg := newConfig()
	cfg.domain = testDomain
	cfg.TTL = defaultTTL
	cfg.TTLAsSecs = uint32(defaultTTL.Seconds())
	cfg.chaosFlag = true
	cfg.logQueries.Store(true)

	return cfg
}
