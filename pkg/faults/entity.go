package faults

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// DefaultValidationMessage is the outer message of Validation and
// DependencyValidation faults.
const DefaultValidationMessage = "Invalid input, contact support."

// Entity names the record type a Router reports on and supplies the
// fixed fault messages for it.
type Entity struct {
	// Name is the PascalCase type name, e.g. "FlightDeal".
	Name string

	// ValidationMessage overrides DefaultValidationMessage for the
	// Validation category when non-empty.
	ValidationMessage string
}

// lowerName returns Name with its first rune lower-cased ("flightDeal").
func (e Entity) lowerName() string {
	r, size := utf8.DecodeRuneInString(e.Name)
	if r == utf8.RuneError {
		return e.Name
	}
	return string(unicode.ToLower(r)) + e.Name[size:]
}

// ValidationOuter is the outer message of Validation faults.
func (e Entity) ValidationOuter() string {
	if e.ValidationMessage != "" {
		return e.ValidationMessage
	}
	return DefaultValidationMessage
}

// DependencyValidationOuter is the outer message of DependencyValidation faults.
func (e Entity) DependencyValidationOuter() string {
	return DefaultValidationMessage
}

// DependencyOuter is the outer message of Dependency faults.
func (e Entity) DependencyOuter() string {
	return fmt.Sprintf("%s dependency error occurred, contact support.", e.Name)
}

// ServiceOuter is the outer message of Service faults.
func (e Entity) ServiceOuter() string {
	return fmt.Sprintf("%s service error occurred, contact support.", e.Name)
}

// FailedStorage is the message of the cause wrapped by Dependency faults
// raised for connectivity and write failures.
func (e Entity) FailedStorage() string {
	return fmt.Sprintf("Failed %s storage error occurred, please contact support.", e.lowerName())
}

// Locked is the message of the cause wrapped by Dependency faults raised
// for concurrency conflicts.
func (e Entity) Locked() string {
	return fmt.Sprintf("Locked %s record exception, please try again later.", e.lowerName())
}

// FailedService is the message of the cause wrapped by Service faults.
func (e Entity) FailedService() string {
	return fmt.Sprintf("Failed %s service error occurred, contact support.", e.lowerName())
}

// AlreadyExists is the message of uniqueness-conflict causes.
func (e Entity) AlreadyExists() string {
	return fmt.Sprintf("%s with the same id already exists.", e.Name)
}

// NotFound is the generic NotFound message used when a call site did not
// explain the absence itself.
func (e Entity) NotFound() string {
	return fmt.Sprintf("Couldn't find %s record.", e.lowerName())
}
