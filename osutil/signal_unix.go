//go:build !windows
// +build !windows

package osutil

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalNotify asks the OS to deliver every signal Classify understands to c.
func SignalNotify(c chan os.Signal) {
	signal.Notify(c, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGUSR1, syscall.SIGUSR2)
}

// Classify maps a received signal to the Action the run loop should take.
func Classify(s os.Signal) Action {
	switch s {
	case os.Interrupt, syscall.SIGTERM:
		return Terminate
	case syscall.SIGHUP:
		return ForceSync
	case syscall.SIGUSR1:
		return ReportStats
	case syscall.SIGUSR2:
		return ToggleQueries
	}

	return Ignore
}
