// Package faults turns raw collaborator failures into domain faults.
//
// Every foundation service owns one [Router] for its entity. A service
// operation runs its stages (pre-flight validation, existence read,
// persistence) inside [Try]; the first error any stage returns is handed
// to [Router.Route] exactly once. The router picks the category, builds
// the fixed messages, logs the result once at the matching severity and
// returns it. Nothing above the router logs or translates it again.
//
//	func (s *Service) RemoveFleetByID(ctx context.Context, id uuid.UUID) (*models.Fleet, error) {
//	    return faults.Try(ctx, s.router, func() (*models.Fleet, error) {
//	        if err := validateID(id); err != nil {
//	            return nil, err
//	        }
//	        fleet, err := s.store.SelectFleetByID(ctx, id)
//	        if err != nil {
//	            return nil, faults.RecordNotFound(err, id)
//	        }
//	        return fleet, s.store.DeleteFleet(ctx, fleet)
//	    })
//	}
package faults

import (
	"errors"
	"fmt"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

// Classification is the router's view of a raw collaborator failure.
type Classification int

const (
	UnclassifiedFault Classification = iota
	NotFound
	UniquenessConflict
	ConcurrencyConflict
	ConnectivityFault
	WriteFault
)

// String returns the classification name.
func (c Classification) String() string {
	switch c {
	case NotFound:
		return "NotFound"
	case UniquenessConflict:
		return "UniquenessConflict"
	case ConcurrencyConflict:
		return "ConcurrencyConflict"
	case ConnectivityFault:
		return "ConnectivityFault"
	case WriteFault:
		return "WriteFault"
	default:
		return "UnclassifiedFault"
	}
}

// Classify maps a raw failure to a Classification using the storage
// vocabulary. Anything the storage layer did not recognise is
// UnclassifiedFault.
func Classify(err error) Classification {
	if errors.Is(err, storage.ErrNotFound) {
		return NotFound
	}
	switch storage.KindOf(err) {
	case storage.KindUniqueness:
		return UniquenessConflict
	case storage.KindConcurrency:
		return ConcurrencyConflict
	case storage.KindConnectivity:
		return ConnectivityFault
	case storage.KindWrite:
		return WriteFault
	default:
		return UnclassifiedFault
	}
}

// ExplainNotFound replaces a storage absence signal with a NotFound cause
// whose message is built from format and args. The absence sentinel stays
// in the chain. Any other error is returned unchanged.
func ExplainNotFound(err error, format string, args ...any) error {
	if err == nil || !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return sserr.Wrapf(err, sserr.CodeNotFound, format, args...)
}

// RecordNotFound is ExplainNotFound with the standard single-key message.
func RecordNotFound(err error, id any) error {
	return ExplainNotFound(err, "%s", RecordNotFoundMessage(id))
}

// RecordNotFoundMessage is the NotFound message for a single-key lookup.
func RecordNotFoundMessage(id any) string {
	return fmt.Sprintf("Couldn't find record with id: %v.", id)
}
