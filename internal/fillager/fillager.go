// Package fillager fetches stored attachments from dp-mellomlagring.
package fillager

import (
	"context"
	"fmt"

	urn "github.com/leodido/go-urn"
)

// Fillager resolves an attachment reference for a given owner to raw bytes.
type Fillager interface {
	HentFil(ctx context.Context, ref FilURN, eier string) ([]byte, error)
}

// FilURN is a validated attachment reference. Only the namespace-specific
// string is used as the storage key.
type FilURN struct {
	fil string
}

// ParseFilURN rejects strings that are not well-formed URNs before any
// network call is made with them.
func ParseFilURN(s string) (FilURN, error) {
	parsed, ok := urn.Parse([]byte(s), urn.WithParsingMode(urn.RFC8141Only))
	if !ok {
		return FilURN{}, fmt.Errorf("ugyldig urn %q", s)
	}
	return FilURN{fil: parsed.SS}, nil
}

// Fil is the storage key the URN points at.
func (u FilURN) Fil() string { return u.fil }

func (u FilURN) String() string { return u.fil }
