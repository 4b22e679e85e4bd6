package errors

import (
	"errors"
)

// AsError returns the first *Error in err's chain. For faults produced by
// the router this is the outer, categorised error.
//
// Example:
//
//	if e, ok := errors.AsError(err); ok {
//	    log.Printf("code=%s category=%s", e.Code, e.Category())
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetCode returns the code of the first *Error in err's chain, or the
// empty code if there is none.
func GetCode(err error) Code {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// HasCode reports whether the first *Error in err's chain has code.
func HasCode(err error, code Code) bool {
	return GetCode(err) == code
}

// ContainsCode reports whether any *Error in err's chain has code. Use it
// to look past the outer category at the inner cause:
//
//	errors.ContainsCode(err, errors.CodeLocked)
func ContainsCode(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// CategoryOf returns the category of the first *Error in err's chain.
func CategoryOf(err error) Category {
	return GetCode(err).Category()
}

// IsCategorized reports whether err's first *Error already carries a
// category code, meaning it has been classified (and logged) once.
func IsCategorized(err error) bool {
	return CategoryOf(err) != ""
}

// IsValidation reports whether err is a Validation fault.
func IsValidation(err error) bool {
	return CategoryOf(err) == CategoryValidation
}

// IsDependencyValidation reports whether err is a DependencyValidation fault.
func IsDependencyValidation(err error) bool {
	return CategoryOf(err) == CategoryDependencyValidation
}

// IsDependency reports whether err is a Dependency fault.
func IsDependency(err error) bool {
	return CategoryOf(err) == CategoryDependency
}

// IsService reports whether err is a Service fault.
func IsService(err error) bool {
	return CategoryOf(err) == CategoryService
}

// IsCallerFixable reports whether the caller can resolve err by changing
// its input (Validation or DependencyValidation).
func IsCallerFixable(err error) bool {
	switch CategoryOf(err) {
	case CategoryValidation, CategoryDependencyValidation:
		return true
	default:
		return false
	}
}

// ViolationsOf returns the violation report attached anywhere in err's
// chain, or nil.
func ViolationsOf(err error) *Violations {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Violations != nil {
			return e.Violations
		}
		err = errors.Unwrap(err)
	}
	return nil
}

// Cause returns the inner cause of a categorised fault: the Cause of the
// outermost *Error. It returns nil when err holds no *Error.
func Cause(err error) error {
	if e, ok := AsError(err); ok {
		return e.Cause
	}
	return nil
}
