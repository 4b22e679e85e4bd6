package errors

import (
	"fmt"
)

// New creates a new Error with the specified code and message.
//
// Example:
//
//	err := errors.New(errors.CodeNullInput, "Fleet is null.")
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with the specified code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err as the Cause of a new Error. This is the uniform
// "wrap(cause) into a category" constructor used by the fault router.
// If err is nil, Wrap returns nil.
//
// Example:
//
//	failed := errors.Wrap(pgErr, errors.CodeFailedStorage,
//	    "Failed fleet storage error occurred, please contact support.")
//	return errors.Wrap(failed, errors.CodeDependency,
//	    "Fleet dependency error occurred, contact support.")
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps err with a formatted message. If err is nil, Wrapf returns nil.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// Invalid creates a CodeInvalid cause carrying the violation report.
// It returns nil when violations is empty, so an empty report can never
// be raised.
//
// Example:
//
//	var v errors.Violations
//	v.Add("Id", "Id is required")
//	err := errors.Invalid("Invalid Fleet. Please correct the errors and try again.", &v)
func Invalid(message string, violations *Violations) *Error {
	if violations.Empty() {
		return nil
	}
	return &Error{
		Code:       CodeInvalid,
		Message:    message,
		Violations: violations,
	}
}

// NullInput creates a CodeNullInput cause for a missing composite input.
func NullInput(message string) *Error {
	return New(CodeNullInput, message)
}

// NotFound creates a CodeNotFound cause.
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a CodeNotFound cause with a formatted message.
//
// Example:
//
//	err := errors.NotFoundf("Couldn't find record with id: %s.", id)
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// AlreadyExists wraps a uniqueness conflict.
func AlreadyExists(err error, message string) *Error {
	return wrapOrNew(err, CodeAlreadyExists, message)
}

// Locked wraps an optimistic-concurrency conflict.
func Locked(err error, message string) *Error {
	return wrapOrNew(err, CodeLocked, message)
}

// Configuration creates a configuration error, wrapping err when non-nil.
func Configuration(err error, message string) *Error {
	return wrapOrNew(err, CodeConfiguration, message)
}

// Configurationf creates a configuration error with a formatted message.
func Configurationf(format string, args ...any) *Error {
	return Newf(CodeConfiguration, format, args...)
}

func wrapOrNew(err error, code Code, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return Wrap(err, code, message)
}
