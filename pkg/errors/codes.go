package errors

// Code represents a machine-readable error code. Codes follow the pattern
// PREFIX_NNN where PREFIX identifies either a fault category (outer codes)
// or a cause family (inner codes).
type Code string

// Outer codes. These are the only codes a caller of a foundation service
// or orchestration ever sees on the outermost [Error].
const (
	// CodeValidation marks caller-supplied data as structurally invalid.
	CodeValidation Code = "VAL_001"

	// CodeDependencyValidation marks a well-formed reference that resolved
	// to nothing, or collided with an existing record.
	CodeDependencyValidation Code = "DEPVAL_001"

	// CodeDependency marks a storage or infrastructure failure.
	CodeDependency Code = "DEP_001"

	// CodeService marks an unanticipated failure.
	CodeService Code = "SVC_001"
)

// Inner (cause) codes.
const (
	// CodeInvalid carries a field-level violation report.
	CodeInvalid Code = "INV_001"

	// CodeNullInput reports a missing composite input.
	CodeNullInput Code = "INV_002"

	// CodeNotFound reports that an existence read found nothing.
	CodeNotFound Code = "NF_001"

	// CodeAlreadyExists reports a uniqueness conflict.
	CodeAlreadyExists Code = "CONF_001"

	// CodeLocked reports an optimistic-concurrency conflict.
	CodeLocked Code = "CONF_002"

	// CodeFailedStorage wraps a raw storage fault.
	CodeFailedStorage Code = "STOR_001"

	// CodeFailedService wraps a raw unanticipated fault.
	CodeFailedService Code = "FAIL_001"

	// CodeConfiguration reports an invalid or unreadable configuration.
	CodeConfiguration Code = "CFG_001"
)

// String returns the string representation of the error code.
func (c Code) String() string {
	return string(c)
}

// Prefix returns the portion of the code before the first underscore
// (e.g., "DEPVAL" for "DEPVAL_001").
func (c Code) Prefix() string {
	s := string(c)
	for i, r := range s {
		if r == '_' {
			return s[:i]
		}
	}
	return s
}

// Category returns the fault category named by an outer code, or the
// empty category for inner codes.
func (c Code) Category() Category {
	switch p := Category(c.Prefix()); p {
	case CategoryValidation, CategoryDependencyValidation, CategoryDependency, CategoryService:
		return p
	default:
		return ""
	}
}

// Category is one of the four caller-visible fault categories.
type Category string

const (
	CategoryValidation           Category = "VAL"
	CategoryDependencyValidation Category = "DEPVAL"
	CategoryDependency           Category = "DEP"
	CategoryService              Category = "SVC"
)

// String returns a readable category name.
func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "Validation"
	case CategoryDependencyValidation:
		return "DependencyValidation"
	case CategoryDependency:
		return "Dependency"
	case CategoryService:
		return "Service"
	default:
		return "Unknown"
	}
}

// Severity orders categories for operators. Caller-fixable categories rank
// lowest, infrastructure faults next and unanticipated faults highest.
// Unknown categories return 0.
func (c Category) Severity() int {
	switch c {
	case CategoryValidation, CategoryDependencyValidation:
		return 1
	case CategoryDependency:
		return 2
	case CategoryService:
		return 3
	default:
		return 0
	}
}
