package member

import (
	"context"

	"github.com/markdingo/zeronsd/zone"
)

// Source produces the current membership. An error means the caller should keep using
// whatever it had before.
type Source interface {
	Members(ctx context.Context) ([]zone.Member, error)
	String() string // For logging
}

// Static is a Source which always returns the same members.
type Static []zone.Member

func (t Static) Members(ctx context.Context) ([]zone.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return append([]zone.Member{}, t...), nil
}

func (t Static) String() string {
	return "static"
}
