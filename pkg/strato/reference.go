package strato

import (
	"context"
	"fmt"
)

// LookupFunc resolves a name-or-ID string to a canonical resource ID.
// Implementations return ErrResourceNotFound when nothing matches and
// ErrTooManyItems when a name matches more than one resource.
type LookupFunc func(ctx context.Context, nameOrID string) (string, error)

// Ref is a lazy reference to a resource by name or ID. Creating a Ref does
// no I/O; the reference is verified against the service on first Resolve and
// the resulting ID is memoized.
type Ref struct {
	value    string
	verified bool
}

// NewRef creates an unverified reference from a name or ID.
func NewRef(nameOrID string) Ref {
	return Ref{value: nameOrID}
}

// VerifiedRef creates a reference from an ID that is already known to be
// valid, e.g. one taken from a server response. Resolve will not contact the
// service for it.
func VerifiedRef(id string) Ref {
	return Ref{value: id, verified: true}
}

// String returns the current value: the ID once verified, otherwise the
// name-or-ID the reference was created from.
func (r Ref) String() string {
	return r.value
}

// IsVerified reports whether the reference has been resolved to an ID.
func (r Ref) IsVerified() bool {
	return r.verified
}

// Resolve verifies the reference using lookup and returns the resource ID.
// The result is memoized: subsequent calls return the stored ID without
// further I/O.
func (r *Ref) Resolve(ctx context.Context, lookup LookupFunc) (string, error) {
	if r.verified {
		return r.value, nil
	}

	id, err := lookup(ctx, r.value)
	if err != nil {
		return "", fmt.Errorf("resolving reference %q: %w", r.value, err)
	}

	r.value = id
	r.verified = true

	return id, nil
}
