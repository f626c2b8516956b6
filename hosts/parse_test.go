package hosts

import (
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const hostsDir = "testdata/hosts-files"

// Every fixture must yield localhost for both loopbacks and the two islay names.
func TestLoadFixtures(t *testing.T) {
	entries, err := os.ReadDir(hostsDir)
	if err != nil {
		t.Fatal("Setup error", err)
	}
	if len(entries) == 0 {
		t.Fatal("No fixtures in", hostsDir)
	}

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(hostsDir, e.Name())
		table, err := Load(path, "zombocom")
		if err != nil {
			t.Error(path, err)
			continue
		}

		for _, a := range []string{"127.0.0.1", "::1"} {
			names := table.Names(netip.MustParseAddr(a))
			if len(names) == 0 || names[0] != "localhost.zombocom." {
				t.Error(path, a, "first name should be localhost.zombocom. not", names)
			}
		}

		names := table.Names(netip.MustParseAddr("127.0.1.1"))
		if len(names) != 2 {
			t.Error(path, "Expected two islay names, got", names)
			continue
		}
		for _, n := range names {
			if n != "islay.localdomain.zombocom." && n != "islay.zombocom." {
				t.Error(path, "Unaccounted name", n)
			}
		}
	}
}

func TestParseGood(t *testing.T) {
	in := `
10.0.0.1 a b A   # a repeated in upper case
10.0.0.2 b
10.0.0.1 c
fd00::1 v6.host
192.0.2.9 abs.example.
`
	table, err := Parse(strings.NewReader(in), "inline", "domain.")
	if err != nil {
		t.Fatal("Unexpected error", err)
	}
	if table.Len() != 4 || table.Count() != 6 {
		t.Error("Wrong sizes", table.Len(), table.Count())
	}

	exp := "a.domain. b.domain. c.domain."
	got := strings.Join(table.Names(netip.MustParseAddr("10.0.0.1")), " ")
	if got != exp {
		t.Error("Accumulation wrong. Got", got, "Exp", exp)
	}
	if n := table.Names(netip.MustParseAddr("10.0.0.2")); len(n) != 1 || n[0] != "b.domain." {
		t.Error("Same name on a second address should be kept", n)
	}
	if n := table.Names(netip.MustParseAddr("192.0.2.9")); len(n) != 1 || n[0] != "abs.example." {
		t.Error("Absolute name should not be rooted", n)
	}

	addrs := table.Addrs()
	order := []string{"10.0.0.1", "10.0.0.2", "fd00::1", "192.0.2.9"}
	for ix, a := range order {
		if addrs[ix].String() != a {
			t.Error(ix, "Address order wrong", addrs[ix], a)
		}
	}
	if table.Names(netip.MustParseAddr("10.9.9.9")) != nil {
		t.Error("Missing address should return nil")
	}
}

func TestParseBad(t *testing.T) {
	long := strings.Repeat(strings.Repeat("a", 60)+".", 4) // 243 octets plus the root
	testCases := []struct {
		in     string
		line   int
		domain string // Defaults to "domain."
	}{
		{"not-an-address localhost", 1, ""},
		{"# ok\n10.0.0.1 a\n10.0.0.300 b", 3, ""},
		{"10.0.0.1", 1, ""},
		{"10.0.0.1   # names commented out", 1, ""},
		{"fe80::1%eth0 scoped", 1, ""},
		{"10.0.0.1 bad_-name-", 1, ""},
		{"10.0.0.1 a..b", 1, ""},
		{"\n\n10.0.0.1 -lead", 3, ""},
		{"10.0.0.1 short\n10.0.0.2 " + strings.Repeat("x", 40), 2, long},
	}

	for ix, tc := range testCases {
		domain := tc.domain
		if len(domain) == 0 {
			domain = "domain."
		}
		_, err := Parse(strings.NewReader(tc.in), "src", domain)
		if err == nil {
			t.Error(ix, "Expected error with", tc.in)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Error(ix, "Expected a ParseError, not", err)
			continue
		}
		if pe.Line != tc.line || pe.Source != "src" {
			t.Error(ix, "Wrong position", pe.Source, pe.Line, "expected line", tc.line)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent"), "domain.")
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatal("Expected ReadError, got", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("ReadError should unwrap to ErrNotExist", err)
	}
}

// An empty path must read DefaultPath(). The system file's content is unknown so the
// result is only compared with an explicit Load of the same path.
func TestLoadDefault(t *testing.T) {
	if _, err := os.Stat(DefaultPath()); err != nil {
		t.Skip("No default hosts file", DefaultPath(), err)
	}

	implicit, ierr := Load("", "domain.")
	explicit, eerr := Load(DefaultPath(), "domain.")
	if (ierr == nil) != (eerr == nil) {
		t.Fatal("Error mismatch", ierr, eerr)
	}
	if ierr != nil {
		if ierr.Error() != eerr.Error() {
			t.Error("Different errors", ierr, eerr)
		}
		return
	}
	if implicit.Len() != explicit.Len() || implicit.Count() != explicit.Count() {
		t.Error("Different tables", implicit.Len(), explicit.Len(), implicit.Count(), explicit.Count())
	}
	for _, addr := range explicit.Addrs() {
		if strings.Join(implicit.Names(addr), " ") != strings.Join(explicit.Names(addr), " ") {
			t.Error("Names differ for", addr, implicit.Names(addr), explicit.Names(addr))
		}
	}
}

func TestMappedAddress(t *testing.T) {
	table := NewTable()
	table.Add(netip.MustParseAddr("::ffff:10.0.0.1"), "a.domain.")
	if n := table.Names(netip.MustParseAddr("10.0.0.1")); len(n) != 1 {
		t.Error("Mapped address should be stored unmapped", n)
	}
	if table.Add(netip.MustParseAddr("10.0.0.1"), "a.domain.") {
		t.Error("Duplicate Add should return false")
	}
}
