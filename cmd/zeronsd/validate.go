package main

import (
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/markdingo/rrl"

	"github.com/markdingo/zeronsd/dnsutil"
	"github.com/markdingo/zeronsd/hosts"
	"github.com/markdingo/zeronsd/member"
	"github.com/markdingo/zeronsd/zone"
)

// Check everything that could likely be a typo or usage error. Mostly checked in the
// order presented by the flag package. Nothing here touches the network.
func (t *zeronsd) ValidateCommandLineOptions() error {
	return t.validate(os.Getenv)
}

func (t *zeronsd) validate(getenv func(string) string) error {
	if !t.cfg.domainSet {
		t.cfg.domain = zone.DefaultDomain
	} else {
		d, err := zone.ParseDomain(t.cfg.domainOption)
		if err != nil {
			return fmt.Errorf("--domain: %w", err)
		}
		t.cfg.domain = d
	}

	if t.cfg.TTL < time.Second {
		return fmt.Errorf("--TTL must be at least 1 second")
	}
	t.cfg.TTLAsSecs = uint32(t.cfg.TTL.Seconds() + 0.5) // Round to nearest second

	if t.cfg.syncInterval < time.Second {
		return fmt.Errorf("--interval must be at least 1 second")
	}

	if t.cfg.fetchTimeout < time.Second {
		return fmt.Errorf("--fetch-timeout must be at least 1 second")
	}

	if t.cfg.reportInterval < time.Second {
		return fmt.Errorf("--report must be at least 1 second")
	}

	if t.cfg.serial == 0 {
		return fmt.Errorf("--serial must not be zero")
	}

	if len(t.cfg.listen) == 0 {
		t.cfg.listen = append(t.cfg.listen, defaultListen)
	} else {
		for ix, addr := range t.cfg.listen {
			t.cfg.listen[ix] = normalizeHostPort(addr, defaultService)
		}
	}

	err := t.validateSource(getenv)
	if err != nil {
		return err
	}

	if t.cfg.noHosts {
		if t.cfg.watchHosts {
			return fmt.Errorf("Cannot have both --no-hosts and --watch-hosts")
		}
	} else if len(t.cfg.hostsFile) == 0 {
		t.cfg.hostsFile = hosts.DefaultPath()
	}

	for ix, ns := range t.cfg.nameservers {
		ns = dnsutil.Qualify(strings.ToLower(ns), t.cfg.domain)
		if err := dnsutil.ValidHostname(ns); err != nil {
			return fmt.Errorf("--nameserver %s: %w", t.cfg.nameservers[ix], err)
		}
		t.cfg.nameservers[ix] = ns
	}

	t.cfg.nsidAsHex = hex.EncodeToString([]byte(t.cfg.nsid))
	t.cfg.logQueries.Store(t.cfg.logQueriesOn)

	if t.cfg.rrlConfig.IsActive() {
		t.rrlHandler = rrl.NewRRL(t.cfg.rrlConfig)
	}

	return nil
}

// validateSource picks exactly one membership source and resolves the Central token if
// Central is the source.
func (t *zeronsd) validateSource(getenv func(string) string) error {
	if len(t.cfg.membersFile) > 0 {
		if len(t.cfg.network) > 0 {
			return fmt.Errorf("Cannot have both --network and --members-file")
		}
		if t.cfg.rfc4193 {
			return fmt.Errorf("--rfc4193 requires --network")
		}
		t.source = member.NewFile(t.cfg.membersFile)
		return nil
	}

	if len(t.cfg.network) == 0 {
		return fmt.Errorf("Must supply one of --network or --members-file")
	}

	nwid, err := member.ParseNetworkID(t.cfg.network)
	if err != nil {
		return fmt.Errorf("--network: %w", err)
	}
	t.cfg.network = nwid

	t.cfg.token, err = resolveToken(t.cfg.token, t.cfg.tokenFile, getenv)
	if err != nil {
		return err
	}

	t.source, err = member.NewCentral(t.cfg.centralURL, t.cfg.network, t.cfg.token,
		t.cfg.rfc4193, t.cfg.fetchTimeout)

	return err
}

// Be helpful with host:port and host:service strings. If the original string only
// contains a naked IP address, append the domain service to create a fully formed
// Host:Port. Otherwise split it up to see if it's already in host:port, if not append the
// domain service and hope for the best.
func normalizeHostPort(addr, service string) string {
	ip := net.ParseIP(addr)
	if ip != nil { // naked IP?
		return net.JoinHostPort(addr, service)
	}
	_, _, err := net.SplitHostPort(addr)
	if err != nil {
		return net.JoinHostPort(addr, service)
	}

	return addr
}
