package osutil

import (
	"os"
	"os/signal"
)

func SignalNotify(c chan os.Signal) {
	signal.Notify(c, os.Interrupt)
}

// Classify only knows about Interrupt on windows.
func Classify(s os.Signal) Action {
	if s == os.Interrupt {
		return Terminate
	}

	return Ignore
}
