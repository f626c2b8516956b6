package main

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/markdingo/rrl"

	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/pregen"
)

const (
	programName = pregen.ProgramName

	defaultService = "domain"
	defaultListen  = ":" + defaultService

	defaultTTL            = time.Minute
	defaultSyncInterval   = time.Second * 30
	defaultReportInterval = time.Hour
	defaultFetchTimeout   = time.Second * 20
)

// rrlConfigStrings separates out the RRL options from all the rest for easy management
// and identification.
type rrlConfigStrings struct {
	window       string // "--rrl-window"
	slipRatio    string // "--rrl-slip-ratio"
	maxTableSize string // "--rrl-max-table-size"

	ipv4PrefixLength string // "--rrl-ipv4-CIDR"
	ipv6PrefixLength string // "--rrl-ipv6-CIDR"

	responsesInterval string // "--rrl-responses-psec"
	nodataInterval    string // "--rrl-nodata-psec"
	nxdomainsInterval string // "--rrl-nxdomain-psec"
	errorsInterval    string // "--rrl-errors-psec"
	requestsInterval  string // "--rrl-requests-psec"
}

// config holds the settings which apply across the whole program. It is populated by
// parseOptions and ValidateCommandLineOptions and is read-only afterwards apart from
// logQueries which SIGUSR2 toggles.
type config struct {
	projectURL string

	domainOption string // As supplied to --domain
	domainSet    bool   // True if --domain was present at all
	domain       string // Validated, absolute and canonical

	network    string // ZeroTier network ID
	token      string // --token, then the resolved token after validation
	tokenFile  string
	centralURL string
	rfc4193    bool

	membersFile string // Alternative to Central

	hostsFile  string
	noHosts    bool
	watchHosts bool

	listen []string

	TTL          time.Duration
	TTLAsSecs    uint32
	serial       uint32
	syncInterval time.Duration
	fetchTimeout time.Duration

	aliasIPv6   bool
	prune       bool
	reverse     bool // --PTR
	nameservers []string

	chaosFlag bool
	nsid      string
	nsidAsHex string

	reportInterval time.Duration

	logMajorFlag bool
	logMinorFlag bool
	logDebugFlag bool
	logQueries   atomic.Bool // Read by every query
	logQueriesOn bool        // Set by flags, transferred to logQueries

	rrlOptions   rrlConfigStrings
	rrlOptionSet bool
	rrlDryRun    bool
	rrlConfig    *rrl.Config
}

func newConfig() *config {
	t := &config{projectURL: pregen.ProjectURL, fetchTimeout: defaultFetchTimeout}
	info, ok := debug.ReadBuildInfo()
	if ok && len(info.Main.Path) > 0 {
		t.projectURL = info.Main.Path
	}
	t.rrlConfig = rrl.NewConfig() // A no-op until a *-psec value is set

	return t
}

func (t *config) printVersion() {
	fmt.Fprintf(log.Out(), "Program:     %s %s (%s)\n", programName, pregen.Version, pregen.ReleaseDate)
	fmt.Fprintf(log.Out(), "Project:     %s\n", t.projectURL)
}
