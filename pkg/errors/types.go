package errors

import (
	"fmt"
)

// Error is the single fault representation of the pipeline. The outermost
// Error in a chain carries a category code; its Cause is either another
// Error (the inner cause) or a raw collaborator failure.
//
// Error is immutable once constructed. The With* helpers return copies.
type Error struct {
	// Code is the machine-readable error code (e.g., "DEP_001").
	Code Code

	// Message is the fixed human-readable message for Code.
	Message string

	// Cause is the wrapped error, if any.
	Cause error

	// Details holds additional structured context such as record ids.
	Details map[string]any

	// Violations is the field-level report attached to CodeInvalid causes.
	// It is nil for every other code.
	Violations *Violations
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if !e.Violations.Empty() {
		msg += " [" + e.Violations.String() + "]"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, supporting errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the fault category of this error's own code.
func (e *Error) Category() Category {
	return e.Code.Category()
}

// WithDetails returns a new Error with the specified details merged in.
// The original error is not modified.
func (e *Error) WithDetails(details map[string]any) *Error {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	cp := *e
	cp.Details = merged
	return &cp
}

// WithDetail returns a new Error with a single detail key-value pair added.
// The original error is not modified.
func (e *Error) WithDetail(key string, value any) *Error {
	return e.WithDetails(map[string]any{key: value})
}

// Format implements fmt.Formatter. Use %+v to print the full structure
// including details, violations and the cause chain.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "Error{Code: %q, Message: %q", e.Code, e.Message)
			if len(e.Details) > 0 {
				fmt.Fprintf(s, ", Details: %v", e.Details)
			}
			if !e.Violations.Empty() {
				fmt.Fprintf(s, ", Violations: %q", e.Violations.String())
			}
			if e.Cause != nil {
				fmt.Fprintf(s, ", Cause: %+v", e.Cause)
			}
			fmt.Fprint(s, "}")
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
