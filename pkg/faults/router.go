package faults

import (
	"context"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
	"github.com/StricklySoft/jaunts-core/pkg/logging"
)

// severity selects the logging collaborator method.
type severity int

const (
	severityError severity = iota
	severityCritical
)

// Router classifies, logs and wraps the faults of one entity. A Router is
// immutable and safe for concurrent use.
type Router struct {
	entity Entity
	logger logging.Logger
}

// NewRouter creates a Router for entity that logs through logger.
func NewRouter(entity Entity, logger logging.Logger) *Router {
	return &Router{entity: entity, logger: logger}
}

// Entity returns the entity the router reports on.
func (r *Router) Entity() Entity {
	return r.entity
}

// Route classifies err, logs the resulting fault once and returns it.
//
//   - nil is returned as nil.
//   - A fault that already carries a category is returned unchanged
//     and not logged again.
//   - Invalid and NullInput causes become Validation.
//   - NotFound and AlreadyExists causes become DependencyValidation.
//   - Raw failures go through [Classify] and the decision table.
func (r *Router) Route(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if sserr.IsCategorized(err) {
		return err
	}

	if e, ok := sserr.AsError(err); ok {
		switch e.Code {
		case sserr.CodeInvalid, sserr.CodeNullInput:
			return r.Validation(ctx, err)
		case sserr.CodeNotFound, sserr.CodeAlreadyExists:
			return r.DependencyValidation(ctx, err)
		case sserr.CodeLocked:
			return r.dependency(ctx, err, severityError)
		}
	}

	switch Classify(err) {
	case NotFound:
		return r.DependencyValidation(ctx, ExplainNotFound(err, "%s", r.entity.NotFound()))
	case UniquenessConflict:
		return r.DependencyValidation(ctx, sserr.AlreadyExists(err, r.entity.AlreadyExists()))
	case ConcurrencyConflict:
		return r.dependency(ctx, sserr.Locked(err, r.entity.Locked()), severityError)
	case ConnectivityFault:
		return r.dependency(ctx, sserr.Wrap(err, sserr.CodeFailedStorage, r.entity.FailedStorage()), severityCritical)
	case WriteFault:
		return r.dependency(ctx, sserr.Wrap(err, sserr.CodeFailedStorage, r.entity.FailedStorage()), severityError)
	default:
		return r.Service(ctx, err)
	}
}

// Validation wraps cause in the Validation category and logs it at Error.
// Call it directly to frame an absence as a caller-input problem.
func (r *Router) Validation(ctx context.Context, cause error) error {
	return r.emit(ctx, sserr.Wrap(cause, sserr.CodeValidation, r.entity.ValidationOuter()), severityError)
}

// DependencyValidation wraps cause in the DependencyValidation category
// and logs it at Error.
func (r *Router) DependencyValidation(ctx context.Context, cause error) error {
	return r.emit(ctx, sserr.Wrap(cause, sserr.CodeDependencyValidation, r.entity.DependencyValidationOuter()), severityError)
}

// Service double-wraps raw: a FailedService cause inside a Service fault.
// It is logged at Error.
func (r *Router) Service(ctx context.Context, raw error) error {
	inner := sserr.Wrap(raw, sserr.CodeFailedService, r.entity.FailedService())
	return r.emit(ctx, sserr.Wrap(inner, sserr.CodeService, r.entity.ServiceOuter()), severityError)
}

func (r *Router) dependency(ctx context.Context, cause error, sev severity) error {
	return r.emit(ctx, sserr.Wrap(cause, sserr.CodeDependency, r.entity.DependencyOuter()), sev)
}

func (r *Router) emit(ctx context.Context, fault *sserr.Error, sev severity) error {
	if fault == nil {
		return nil
	}
	switch sev {
	case severityCritical:
		r.logger.Critical(ctx, fault)
	default:
		r.logger.Error(ctx, fault)
	}
	return fault
}
