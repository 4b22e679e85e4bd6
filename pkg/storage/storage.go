// Package storage defines the failure vocabulary every storage backend
// speaks. Clients translate driver-specific errors into it so that the
// fault router can classify a failure without importing any driver.
//
// An existence lookup that matches nothing returns [ErrNotFound]; that is
// an absence signal, not a fault. Everything that goes wrong while talking
// to the backend is reported as a [*Fault] with a [Kind]:
//
//	if errors.Is(err, storage.ErrNotFound) { ... }
//	switch storage.KindOf(err) {
//	case storage.KindConnectivity: ...
//	}
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("storage: record not found")

// Kind categorises a storage failure.
type Kind int

const (
	// KindUnknown is reported for errors that are not a *Fault.
	KindUnknown Kind = iota

	// KindConnectivity means the backend was unreachable, overloaded,
	// shutting down, or did not answer in time.
	KindConnectivity

	// KindWrite means the backend rejected or failed an ordinary
	// read or write.
	KindWrite

	// KindConcurrency means a concurrent writer won a race on the same
	// record, for example a stale version token.
	KindConcurrency

	// KindUniqueness means the write collided with an existing record.
	KindUniqueness
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindWrite:
		return "write"
	case KindConcurrency:
		return "concurrency"
	case KindUniqueness:
		return "uniqueness"
	default:
		return "unknown"
	}
}

// Fault is a classified storage failure.
type Fault struct {
	// Kind is the failure category.
	Kind Kind

	// Op names the failed operation, e.g. "postgres: exec".
	Op string

	// Err is the raw driver error.
	Err error
}

// NewFault returns a *Fault, or nil when err is nil.
func NewFault(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Fault{Kind: kind, Op: op, Err: err}
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s fault: %v", f.Op, f.Kind, f.Err)
}

// Unwrap returns the raw driver error.
func (f *Fault) Unwrap() error {
	return f.Err
}

// KindOf returns the kind of the first *Fault in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}

// ErrVersionConflict is wrapped in a KindConcurrency fault by stores whose
// optimistic update matched no row with the expected version.
var ErrVersionConflict = errors.New("storage: version conflict")

// VersionConflict returns the KindConcurrency fault for op.
func VersionConflict(op string) error {
	return &Fault{Kind: KindConcurrency, Op: op, Err: ErrVersionConflict}
}
