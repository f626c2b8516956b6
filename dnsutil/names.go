package dnsutil

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// ChompCanonicalName lower-cases the name and removes one trailing dot. The database
// splits names into labels, where the trailing dot would only produce an empty label.
func ChompCanonicalName(n string) string {
	return strings.TrimSuffix(dns.CanonicalName(n), ".")
}

// ValidLabel checks a single label against the host name rules zeronsd applies to
// everything it synthesizes: 1-63 octets of letters, digits, hyphen or underscore with no
// leading or trailing hyphen. Underscore is tolerated for service-style names found in
// hosts files.
func ValidLabel(label string) error {
	if len(label) == 0 {
		return fmt.Errorf("Empty label")
	}
	if len(label) > MaxLabelLength {
		return fmt.Errorf("Label '%s' exceeds %d octets", label, MaxLabelLength)
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return fmt.Errorf("Label '%s' cannot start or end with a hyphen", label)
	}
	for _, c := range label {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_':
		default:
			return fmt.Errorf("Label '%s' contains invalid character %q", label, c)
		}
	}

	return nil
}

// ValidHostname checks every label of a relative or absolute name. The root name "." is
// not a valid host name.
func ValidHostname(name string) error {
	n := strings.TrimSuffix(name, ".")
	if len(n) == 0 {
		return fmt.Errorf("Empty name")
	}
	if len(n) > MaxNameLength {
		return fmt.Errorf("Name '%s' exceeds %d octets", name, MaxNameLength)
	}
	for _, label := range strings.Split(n, ".") {
		if err := ValidLabel(label); err != nil {
			return fmt.Errorf("Invalid name '%s': %w", name, err)
		}
	}

	return nil
}

// Qualify returns the canonical form of name. A name with a trailing dot is already
// absolute and is only canonicalized; any other name is rooted under domain, which is
// assumed to be canonical and absolute.
func Qualify(name, domain string) string {
	if dns.IsFqdn(name) {
		return dns.CanonicalName(name)
	}

	return dns.CanonicalName(name + "." + domain)
}

// InDomain returns true if sub is domain or a descendant of it. Both names are
// canonicalized before comparison. An empty or root domain contains everything.
func InDomain(sub, domain string) bool {
	if len(domain) == 0 || domain == "." {
		return true
	}

	return dns.IsSubDomain(dns.CanonicalName(domain), dns.CanonicalName(sub))
}
