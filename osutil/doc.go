// Package osutil hides the signal differences between unix and windows from the rest of
// zeronsd.
package osutil

// Action is what a received signal asks the process to do.
type Action int

const (
	Ignore        Action = iota
	Terminate            // SIGINT, SIGTERM
	ForceSync            // SIGHUP re-runs a sync pass immediately
	ReportStats          // SIGUSR1
	ToggleQueries        // SIGUSR2 flips --log-queries
)

func (t Action) String() string {
	switch t {
	case Terminate:
		return "Terminate"
	case ForceSync:
		return "ForceSync"
	case ReportStats:
		return "ReportStats"
	case ToggleQueries:
		return "ToggleQueries"
	}

	return "Ignore"
}
