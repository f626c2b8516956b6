package zone

import (
	"fmt"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
)

// DefaultDomain is used when no domain is configured.
const DefaultDomain = "domain."

// ParseDomain converts a user supplied top level name into the zone domain by appending
// the root. Input must therefore be relative: "zerotier" and "zerotier.tld" are fine but
// "bad." becomes "bad.." and is rejected along with the empty string.
func ParseDomain(tld string) (string, error) {
	domain := tld + "."
	if err := checkDomain(domain); err != nil {
		return "", &DomainError{Domain: tld, Err: err}
	}

	return dns.CanonicalName(domain), nil
}

func checkDomain(domain string) error {
	if !dns.IsFqdn(domain) {
		return fmt.Errorf("Must be fully qualified")
	}

	return dnsutil.ValidHostname(domain)
}
