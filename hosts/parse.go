package hosts

import (
	"bufio"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
)

// Load reads and parses the hosts file at path. An empty path means DefaultPath().
func Load(path, domain string) (*Table, error) {
	if len(path) == 0 {
		path = DefaultPath()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Source: path, Err: err}
	}
	defer f.Close()

	return Parse(f, path, domain)
}

// Parse reads hosts-file formatted text from r. source only appears in errors.
func Parse(r io.Reader, source, domain string) (*Table, error) {
	domain = dns.CanonicalName(dns.Fqdn(domain))
	table := NewTable()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		line := text
		if ix := strings.IndexByte(line, '#'); ix >= 0 {
			line = line[:ix]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		perr := func(reason string) error {
			return &ParseError{Source: source, Line: lineNum, Text: strings.TrimSpace(text),
				Reason: reason}
		}

		addr, err := netip.ParseAddr(fields[0])
		if err != nil {
			return nil, perr("Invalid address")
		}
		if len(addr.Zone()) > 0 {
			return nil, perr("Scoped address not supported")
		}
		if len(fields) < 2 {
			return nil, perr("Address has no names")
		}

		for _, name := range fields[1:] {
			if err := dnsutil.ValidHostname(name); err != nil {
				return nil, perr(err.Error())
			}
			fqdn := dnsutil.Qualify(name, domain)
			if err := dnsutil.ValidHostname(fqdn); err != nil {
				return nil, perr(err.Error())
			}
			table.Add(addr, fqdn)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &ReadError{Source: source, Err: err}
	}

	return table, nil
}
