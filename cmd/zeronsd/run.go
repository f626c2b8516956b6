package main

import (
	"fmt"
	"os"
	"time"

	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/osutil"
	"github.com/markdingo/zeronsd/pregen"
)

// Run the server loop checking for signals and stats report events. The sync loop and the
// optional hosts watcher run as companion go-routines which exit when Run closes done.
func (t *zeronsd) Run() {
	var signal os.Signal
	osutil.SignalNotify(t.sig)

	var hostsChanged <-chan struct{} // nil channels never fire in a select
	if t.cfg.watchHosts && !t.cfg.noHosts {
		hw, err := newHostsWatcher(t.cfg.hostsFile)
		if err != nil {
			warning(err, "--watch-hosts", t.cfg.hostsFile, "disabled")
		} else {
			hostsChanged = hw.Changed()
			go hw.run(t.Done())
			log.Minor("Watching ", t.cfg.hostsFile)
		}
	}

	go t.watchForSyncs(t.cfg.syncInterval, hostsChanged)

	fmt.Fprintln(log.Out(), programName, pregen.Version, "Ready")

	var reportChannel <-chan time.Time
	if t.cfg.reportInterval > 0 {
		reportTicker := time.NewTicker(t.cfg.reportInterval)
		reportChannel = reportTicker.C
		defer reportTicker.Stop()
	}

	stopFlag := false
	for !stopFlag {
		select {
		case <-reportChannel:
			t.statsReport(true)

		case signal = <-t.sig:
			switch osutil.Classify(signal) {
			case osutil.Terminate:
				stopFlag = true

			case osutil.ReportStats:
				t.statsReport(false)

			case osutil.ToggleQueries:
				on := !t.cfg.logQueries.Load()
				t.cfg.logQueries.Store(on)
				log.Majorf("--log-queries=%t", on)

			case osutil.ForceSync:
				log.Major("SIGHUP sync initiated")
				if !t.requestSync() {
					log.Minor("Sync already pending")
				}

			default:
				log.Majorf("Signal '%s' reserved for future use", signal)
			}
		}
	}

	log.Majorf("Signal '%s' initiates shutdown", signal)
	close(t.done)
	t.stopServers()
	log.Minor("All Listen servers stopped")
}

// Writes summary stats via the logger
func (t *zeronsd) statsReport(resetCounters bool) {
	var totals serverStats
	for _, srv := range t.servers {
		s := srv.statsCopy(resetCounters)
		totals.add(&s)
	}

	now := time.Now()
	upDuration := now.Sub(t.startTime).Round(time.Second)
	statsDuration := now.Sub(t.statsTime).Round(time.Second)
	if resetCounters {
		t.statsTime = now
	}

	t.syncMu.Lock()
	syncs := t.syncs.String()
	t.syncMu.Unlock()

	// Version is included so stats parsers know what format to expect.
	log.Major("Stats: Uptime ", upDuration, " Stats Time: ", statsDuration, " ", pregen.Version)
	log.Major("Stats: Sync ", syncs)
	log.Major("Stats: Total ", totals.gen.String())
	log.Major("Stats: A ", totals.A.String())
	log.Major("Stats: AAAA ", totals.AAAA.String())
	log.Major("Stats: PTR ", totals.PTR.String())
}
