// Package errors defines the domain fault taxonomy shared by every Jaunts
// foundation service. A caller only ever sees one of four fault categories,
// each with a stable outer message and a wrapped cause that explains what
// actually went wrong.
//
// # Categories
//
//   - Validation: caller-supplied data is structurally invalid
//   - DependencyValidation: a well-formed reference resolves to nothing
//   - Dependency: the underlying storage misbehaved
//   - Service: anything unanticipated, always double-wrapped
//
// The categories are ordered by operator severity (see [Category.Severity]).
//
// # Error Codes
//
// Every [Error] carries a machine-readable [Code] of the form PREFIX_NNN.
// Outer codes (VAL, DEPVAL, DEP, SVC) name the category; inner codes
// (INV, NF, CONF, STOR, FAIL) name the cause:
//
//	DEP_001: Fleet dependency error occurred, contact support.:
//	    STOR_001: Failed fleet storage error occurred, please contact support.:
//	        connection refused
//
// # Usage
//
// Build an inner cause and wrap it in its category:
//
//	notFound := errors.NotFoundf("Couldn't find record with id: %s.", id)
//	err := errors.Wrap(notFound, errors.CodeDependencyValidation, "Invalid input, contact support.")
//
// Inspect the category of a returned fault:
//
//	if errors.IsDependency(err) {
//	    // storage problem, escalate or retry later
//	}
//
// Validation faults expose the full violation report:
//
//	if v := errors.ViolationsOf(err); v != nil {
//	    for _, p := range v.Parameters() {
//	        fmt.Println(p, v.Messages(p))
//	    }
//	}
package errors
