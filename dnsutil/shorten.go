package dnsutil

import (
	"strings"
)

// shortenedError keeps the original error available via Unwrap while presenting a terse
// message for logs.
type shortenedError struct {
	msg string
	err error
}

func (t *shortenedError) Error() string {
	return t.msg
}

func (t *shortenedError) Unwrap() error {
	return t.err
}

// ShortenNetError replaces the very long errors produced by net and net/http for the
// common failures (timeouts, refused connections, unknown hosts) with a single word or
// two. Other errors are returned unchanged.
func ShortenNetError(err error) error {
	if err == nil {
		return nil
	}
	m := err.Error()
	switch {
	case strings.Contains(m, "i/o timeout"), strings.Contains(m, "deadline exceeded"):
		return &shortenedError{msg: "Timeout", err: err}
	case strings.Contains(m, "connection refused"):
		return &shortenedError{msg: "Connection refused", err: err}
	case strings.Contains(m, "no such host"):
		return &shortenedError{msg: "No such host", err: err}
	}

	return err
}
