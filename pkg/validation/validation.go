// Package validation is the rule engine used by foundation services to
// check their inputs before any I/O happens.
//
// A [Rule] is a precomputed (violated, message) pair produced by a pure
// helper such as [IsInvalidID]. Rules are attached to parameter names with
// [Check] and handed to [Validate], which evaluates every check without
// short-circuiting and reports all violations at once:
//
//	err := validation.Validate("Fleet",
//	    validation.Check("Id", validation.IsInvalidID(fleet.ID)),
//	    validation.Check("Name", validation.IsInvalidText(fleet.Name)),
//	)
//
// Validate returns nil when nothing is violated, and otherwise an inner
// CodeInvalid cause carrying the ordered violation report. Wrapping that
// cause in the Validation category (and logging it) is the fault router's
// job, not this package's.
package validation

import (
	"fmt"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
)

// Rule is the outcome of evaluating one condition.
type Rule struct {
	Violated bool
	Message  string
}

// When returns a Rule that is violated if cond is true.
func When(cond bool, message string) Rule {
	return Rule{Violated: cond, Message: message}
}

// Checked pairs a Rule with the parameter it reports against.
type Checked struct {
	Parameter string
	Rule      Rule
}

// Check attaches rule to parameter.
func Check(parameter string, rule Rule) Checked {
	return Checked{Parameter: parameter, Rule: rule}
}

// Validate evaluates every check and returns a CodeInvalid cause listing
// all violated checks in order, or nil when none is violated. entity names
// the validated type in the cause message ("Invalid Fleet. ...").
func Validate(entity string, checks ...Checked) error {
	var violations sserr.Violations
	for _, c := range checks {
		if c.Rule.Violated {
			violations.Add(c.Parameter, c.Rule.Message)
		}
	}
	if violations.Empty() {
		return nil
	}
	return sserr.Invalid(InvalidMessage(entity), &violations)
}

// InvalidMessage is the message of the CodeInvalid cause for entity.
func InvalidMessage(entity string) string {
	return fmt.Sprintf("Invalid %s. Please correct the errors and try again.", entity)
}

// Present returns a CodeNullInput cause when v is nil. It is evaluated as
// a separate step before any field rule is built, because field rules
// cannot be computed for an absent value.
//
//	if err := validation.Present("Fleet", fleet); err != nil {
//	    return nil, err
//	}
func Present[T any](entity string, v *T) error {
	if v == nil {
		return sserr.NullInput(entity + " is null.")
	}
	return nil
}
