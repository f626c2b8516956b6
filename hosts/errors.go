package hosts

import (
	"fmt"
)

// ParseError identifies the first malformed line of a hosts source. Line is 1-based.
type ParseError struct {
	Source string
	Line   int
	Text   string
	Reason string
}

func (t *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: '%s'", t.Source, t.Line, t.Reason, t.Text)
}

// ReadError is returned when the hosts source cannot be opened or read.
type ReadError struct {
	Source string
	Err    error
}

func (t *ReadError) Error() string {
	return fmt.Sprintf("Cannot read hosts file %s: %s", t.Source, t.Err)
}

func (t *ReadError) Unwrap() error {
	return t.Err
}
