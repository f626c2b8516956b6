package zone

import (
	"errors"
	"fmt"
)

// ErrBusy is returned by TryConfigure when another pass is in progress.
var ErrBusy = errors.New("Configure already in progress")

// BuildError is returned when an input cannot be turned into a valid record. Source
// identifies the member or hosts entry, Token is the offending value.
type BuildError struct {
	Source string
	Token  string
	Reason string
}

func (t *BuildError) Error() string {
	return fmt.Sprintf("%s: %s '%s'", t.Source, t.Reason, t.Token)
}

// InvariantError means a caller handed State an RR it can never hold. It is always a
// programming defect so State panics with it. Authority.Configure recovers it and returns
// it as an ordinary error with the committed state untouched.
type InvariantError struct {
	RR     string
	Reason string
}

func (t *InvariantError) Error() string {
	return fmt.Sprintf("Zone invariant violated: %s: %s", t.Reason, t.RR)
}

// DomainError reports an unusable zone domain.
type DomainError struct {
	Domain string
	Err    error
}

func (t *DomainError) Error() string {
	return fmt.Sprintf("Invalid domain '%s': %s", t.Domain, t.Err)
}

func (t *DomainError) Unwrap() error {
	return t.Err
}
