package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/pregen"
)

func reportError(severity string, err error, messages ...string) {
	msg := severity
	if len(messages) > 0 {
		msg += ": " + strings.Join(messages, " ")
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(log.Out(), msg)
}

func fatal(err error, messages ...string) {
	reportError("Fatal", err, messages...)
	os.Exit(1)
}

func warning(err error, messages ...string) {
	reportError("Warning", err, messages...)
}

//////////////////////////////////////////////////////////////////////

func main() {
	zd := newZeronsd(nil)
	switch zd.parseOptions(os.Args) {
	case parseStop:
		return
	case parseFailed:
		os.Exit(1)
	case parseContinue:
	}

	if zd.cfg.logMajorFlag {
		log.SetLevel(log.MajorLevel)
	}
	if zd.cfg.logMinorFlag {
		log.SetLevel(log.MinorLevel)
	}
	if zd.cfg.logDebugFlag {
		log.SetLevel(log.DebugLevel)
	}

	fmt.Fprintln(log.Out(), programName, pregen.Version, "Starting with Log Level:", log.Level())

	err := zd.ValidateCommandLineOptions()
	if err != nil {
		fatal(err)
	}

	err = zd.newAuthority()
	if err != nil {
		fatal(err)
	}

	// A failed first pass is not fatal. The apex is served and the next interval
	// tries again.
	zd.sync("Initial")

	zd.startServers() // Only returns if listens succeed

	zd.Run()

	zd.statsReport(false)

	fmt.Fprintln(log.Out(), programName, pregen.Version, "Exiting after",
		time.Since(zd.startTime).Round(time.Second))
}
