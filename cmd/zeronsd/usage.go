package main

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/member"
	"github.com/markdingo/zeronsd/zone"
)

type parseResult int // This is a ternary variable
const (
	parseStop     parseResult = iota // No error, but don't continue
	parseContinue                    // No errors and continue
	parseFailed                      // Errors, do not continue
)

// Some usage messages have a trailing \n to place a bit of white-space around dense
// option output. That only works for options with no default value as otherwise the
// default message is placed *after* the \n.
//
// The usage output is formatted to fit within a 100 column terminal.
func (t *zeronsd) parseOptions(args []string) parseResult {
	var helpFlag, versionFlag bool

	name := programName
	if len(args) > 0 {
		name = args[0]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Consider '-h' for command-line usage")
	}

	fs.SetOutput(log.Out())

	// Non-config flags

	fs.BoolVarP(&helpFlag, "help", "h", false, "Print command-line usage")
	fs.BoolVarP(&versionFlag, "version", "v", false, "Print version and origin URL")

	// config flags

	fs.BoolVar(&t.cfg.aliasIPv6, "alias-ipv6", false,
		`Also publish named members' IPv6 addresses under their
friendly name. By default only IPv4 addresses are aliased.`)
	fs.BoolVar(&t.cfg.chaosFlag, "CHAOS", true,
		`Answer CHAOS TXT queries for version.bind, version.server,
authors.bind, hostname.bind and id.server.`)
	fs.BoolVar(&t.cfg.noHosts, "no-hosts", false, "Do not merge a hosts file into the zone")
	fs.BoolVar(&t.cfg.prune, "prune", false,
		`Remove records which are no longer produced by either source.
Without --prune, departed members linger until restart.`)
	fs.BoolVar(&t.cfg.reverse, "PTR", false,
		"Serve PTR queries for every address in the zone")
	fs.BoolVar(&t.cfg.rfc4193, "rfc4193", false,
		"Add each member's RFC4193 address derived from the network ID")
	fs.BoolVar(&t.cfg.watchHosts, "watch-hosts", false,
		"Sync immediately when the hosts file changes")

	fs.BoolVar(&t.cfg.logMajorFlag, "log-major", true, "Log major events to Stdout")
	fs.BoolVar(&t.cfg.logMinorFlag, "log-minor", false,
		"Log minor events to Stdout - this implies --log-major")
	fs.BoolVar(&t.cfg.logDebugFlag, "log-debug", false,
		"Log debug events to Stdout - this implies --log-minor")
	fs.BoolVar(&t.cfg.logQueriesOn, "log-queries", false,
		`Log DNS queries to Stdout. This setting can be toggled with
SIGUSR2.`)

	// config Durations

	fs.DurationVar(&t.cfg.TTL, "TTL", defaultTTL, "TTL for all zone records (>= 1s)")
	fs.DurationVar(&t.cfg.syncInterval, "interval", defaultSyncInterval,
		"Interval between membership syncs (>= 1s)")
	fs.DurationVar(&t.cfg.fetchTimeout, "fetch-timeout", defaultFetchTimeout,
		"Maximum time allowed to fetch membership")
	fs.DurationVar(&t.cfg.reportInterval, "report", defaultReportInterval,
		"Interval between statistics reports (>= 1s)")

	// config ints

	fs.Uint32Var(&t.cfg.serial, "serial", 1, "Starting SOA serial")

	// config StringVars

	fs.StringVar(&t.cfg.centralURL, "central-url", member.DefaultCentralURL,
		"Base URL of the ZeroTier Central API")
	fs.StringVar(&t.cfg.domainOption, "domain", strings.TrimSuffix(zone.DefaultDomain, "."),
		"Zone to serve. A trailing dot is added.")
	fs.StringVar(&t.cfg.hostsFile, "hosts-file", "",
		`Hosts file to merge into the zone (default is the system hosts
file)`)
	fs.StringVar(&t.cfg.membersFile, "members-file", "",
		`YAML file of members to serve instead of fetching them from
ZeroTier Central. Cannot be used with --network.
`)
	fs.StringVar(&t.cfg.network, "network", "",
		`ZeroTier network ID (16 hex digits) whose members are
fetched from ZeroTier Central.
`)
	fs.StringVar(&t.cfg.nsid, "NSID", "",
		"Respond to EDNS NSID sub-opt with the specified string.")
	fs.StringVar(&t.cfg.token, "token", "",
		"ZeroTier Central API token. Overrides $"+member.TokenEnv+".")
	fs.StringVar(&t.cfg.tokenFile, "token-file", "",
		"File containing the ZeroTier Central API token")

	// config RRL StringVars are passed to the rrl package as strings. It does the
	// conversion and range checking.

	fs.StringVar(&t.cfg.rrlOptions.window, "rrl-window", "",
		"Seconds during which response rates are tracked (default 15)")
	fs.StringVar(&t.cfg.rrlOptions.slipRatio, "rrl-slip-ratio", "",
		`Ratio of rate-limited responses given a truncated response over
a dropped response. A ratio of 0 disables slip processing
(default 2).`)
	fs.StringVar(&t.cfg.rrlOptions.maxTableSize, "rrl-max-table-size", "",
		`Maximum number of responses to be tracked at one time
(default 100000).`)
	fs.BoolVar(&t.cfg.rrlDryRun, "rrl-dryrun", false,
		"Invoke RRL analysis but ignore recommended action")
	fs.StringVar(&t.cfg.rrlOptions.ipv4PrefixLength, "rrl-ipv4-CIDR", "",
		"The prefix length in bits identifying an ipv4 client (default 24).")
	fs.StringVar(&t.cfg.rrlOptions.ipv6PrefixLength, "rrl-ipv6-CIDR", "",
		"The prefix length in bits identifying an ipv6 client (default 56).")
	fs.StringVar(&t.cfg.rrlOptions.responsesInterval, "rrl-responses-psec", "",
		`The number of Answer responses allowed per second. An
allowance of 0 disables Answer rate limiting (default 0).`)
	fs.StringVar(&t.cfg.rrlOptions.nodataInterval, "rrl-nodata-psec", "",
		`The number of NoData responses allowed per second (defaults to
--rrl-responses-psec).`)
	fs.StringVar(&t.cfg.rrlOptions.nxdomainsInterval, "rrl-nxdomain-psec", "",
		`The number of NXDomain responses allowed per second (defaults
to --rrl-responses-psec).`)
	fs.StringVar(&t.cfg.rrlOptions.errorsInterval, "rrl-errors-psec", "",
		`The number of Error responses allowed per second, excluding
NXDomain (defaults to --rrl-responses-psec).`)
	fs.StringVar(&t.cfg.rrlOptions.requestsInterval, "rrl-requests-psec", "",
		`The number of requests allowed per second from a source IP
(default 0).`)

	// config String Arrays

	fs.StringArrayVar(&t.cfg.listen, "listen", []string{},
		`Address to listen on for DNS queries - accepts 'host:port',
':port', ':service', v4address:port or [v6address]:port syntax.
The default is ':domain'.
`)
	fs.StringArrayVar(&t.cfg.nameservers, "nameserver", []string{},
		`Name server for the apex NS and SOA. Unqualified names are
placed under --domain. The default is ns1.<domain>.
`)

	////////////////////////////////////////

	// Neither "flag" nor "spf13/pflag" reject duplicate options, so duplicates are
	// managed here.

	dupes := make(map[string]bool) // True means dupes are ok

	dupes["help"] = true
	dupes["version"] = true

	dupes["listen"] = true // These are legitimately allowed multiple times
	dupes["nameserver"] = true

	fs.SetInterspersed(false)
	err := fs.ParseAll(args[1:],
		func(f *flag.Flag, v string) error {
			if tf, ok := dupes[f.Name]; ok {
				if tf {
					return fs.Set(f.Name, v)
				}
				return fmt.Errorf("Duplicate option '--%v %v' not allowed",
					f.Name, v)
			}
			dupes[f.Name] = false
			return fs.Set(f.Name, v)
		})

	if err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return parseFailed
	}

	if helpFlag {
		printUsage(fs)
		fmt.Fprintln(log.Out())
		t.cfg.printVersion()
		return parseStop
	}

	if versionFlag {
		t.cfg.printVersion()
		return parseStop
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(log.Out(), "Error:Unexpected goop on command line: '%s'\n",
			strings.Join(fs.Args(), " "))
		return parseFailed
	}

	t.cfg.domainSet = fs.Changed("domain")

	return t.parseRRLOptions()
}

// All rrl values are accepted as strings and handed to the rrl package which converts
// and range checks them.
//
// The rrl config starts life as a no-op so at least one of the *psec values has to be
// set above zero otherwise Debit() does nothing. As soon as any --rrl-* option is set,
// the caller presumably wants a functional rrl so a *psec value is required.
func (t *zeronsd) parseRRLOptions() parseResult {
	opts := []struct{ name, value string }{
		{"window", t.cfg.rrlOptions.window},
		{"slip-ratio", t.cfg.rrlOptions.slipRatio},
		{"max-table-size", t.cfg.rrlOptions.maxTableSize},
		{"ipv4-CIDR", t.cfg.rrlOptions.ipv4PrefixLength},
		{"ipv6-CIDR", t.cfg.rrlOptions.ipv6PrefixLength},
		{"responses-per-second", t.cfg.rrlOptions.responsesInterval},
		{"nodata-per-second", t.cfg.rrlOptions.nodataInterval},
		{"nxdomains-per-second", t.cfg.rrlOptions.nxdomainsInterval},
		{"errors-per-second", t.cfg.rrlOptions.errorsInterval},
		{"requests-per-second", t.cfg.rrlOptions.requestsInterval},
	}
	for _, o := range opts {
		if !t.setRRLOption(o.name, o.value) {
			return parseFailed
		}
	}

	if (t.cfg.rrlOptionSet || t.cfg.rrlDryRun) && !t.cfg.rrlConfig.IsActive() {
		fmt.Fprintln(log.Out(), "Error: RRL requires at least one -*psec option to activate")
		return parseFailed
	}

	return parseContinue
}

func (t *zeronsd) setRRLOption(name, value string) bool {
	if len(value) == 0 {
		return true
	}

	t.cfg.rrlOptionSet = true
	err := t.cfg.rrlConfig.SetValue(name, value)
	if err != nil {
		fmt.Fprintln(log.Out(), "Error:", err.Error())
		return false
	}

	return true
}

func printUsage(fs *flag.FlagSet) {
	o := log.Out()
	fmt.Fprintln(o, "NAME")
	fmt.Fprintln(o, " ", programName, "-- an authoritative name server for ZeroTier networks")
	fmt.Fprintln(o)
	fmt.Fprintln(o, "SYNOPSIS")
	fmt.Fprintln(o, "     zeronsd -h | --help | -v | --version")
	fmt.Fprintln(o, "     zeronsd --network network-id | --members-file path")
	fmt.Fprintln(o, `             [--domain zone=domain] [--token token] [--token-file path]
             [--central-url URL] [--rfc4193] [--alias-ipv6] [--prune] [--PTR]
             [--hosts-file path | --no-hosts] [--watch-hosts]
             [--listen listen-address]… [--nameserver name]…
             [--TTL time.Duration=1m] [--serial n=1] [--interval time.Duration=30s]
             [--fetch-timeout time.Duration=20s]
             [--CHAOS=true] [--NSID hostid]
             [--log-major=true] [--log-minor] [--log-debug]
             [--log-queries] [--report time.Duration=1h]
             [--rrl-dryrun]
             [--rrl-ipv4-CIDR length] [--rrl-ipv6-CIDR length]
             [--rrl-max-table-size size] [--rrl-window size] [--rrl-slip-ratio ratio]
             [--rrl-errors-psec n] [--rrl-nodata-psec n] [--rrl-nxdomain-psec n]
             [--rrl-requests-psec n] [--rrl-responses-psec n]`)

	fmt.Fprintln(o)
	fmt.Fprintln(o, "     Ellipses (…) indicate options which can be specified multiple times.")
	fmt.Fprint(o, `
DESCRIPTION
     zeronsd serves a DNS zone built from the members of a ZeroTier network and
     the local hosts file. Every authorized member is published as
     zt-<node-id>.<domain> with an A or AAAA record for each assigned address.
     Members with a name also get an A record at <name>.<domain>.

     Membership is re-fetched every --interval, on SIGHUP and, with
     --watch-hosts, whenever the hosts file changes. A failed fetch never
     disturbs the zone being served. Every record written advances the SOA
     serial by one.

     A typical invocation is:

           # ZEROTIER_CENTRAL_TOKEN=… zeronsd --network 8056c2e21c000001 --domain zt.example
`)
	fmt.Fprintln(o)
	fmt.Fprintln(o, "OPTIONS")
	op := fs.Output()
	fs.SetOutput(o)
	fs.PrintDefaults()
	fs.SetOutput(op)

	fmt.Fprint(o, `
NOTES
  1. --listen and --nameserver can be repeated multiple times.
  2. The Central token is taken from --token, then $ZEROTIER_CENTRAL_TOKEN, then
     --token-file.
  3. RRL is only activated when at least one of the *-psec values is set above zero.

SIGNALS
  SIGHUP  - sync membership and hosts file now
  SIGTERM - initiate shutdown
  SIGINT  - initiate shutdown
  SIGUSR1 - generates an immediate stats report
  SIGUSR2 - toggles --log-queries
`)
}
