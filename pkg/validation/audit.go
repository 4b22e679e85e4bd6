package validation

import (
	"github.com/StricklySoft/jaunts-core/pkg/clock"
	"github.com/StricklySoft/jaunts-core/pkg/models"
)

// AddAudit returns the audit checks for a record being created: every
// field is required, the record has never been updated and CreatedDate is
// recent.
func AddAudit(c clock.Clock, a models.Audit) []Checked {
	return []Checked{
		Check("CreatedBy", IsInvalidID(a.CreatedBy)),
		Check("UpdatedBy", IsInvalidID(a.UpdatedBy)),
		Check("CreatedDate", IsInvalidDate(a.CreatedDate)),
		Check("UpdatedDate", IsInvalidDate(a.UpdatedDate)),
		Check("UpdatedDate", IsNotSameDate(a.UpdatedDate, a.CreatedDate, "CreatedDate")),
		Check("CreatedDate", IsNotRecent(c, a.CreatedDate)),
	}
}

// ModifyAudit returns the audit checks for a submitted update: every field
// is required, UpdatedDate moved past CreatedDate and is recent.
func ModifyAudit(c clock.Clock, a models.Audit) []Checked {
	return []Checked{
		Check("CreatedBy", IsInvalidID(a.CreatedBy)),
		Check("UpdatedBy", IsInvalidID(a.UpdatedBy)),
		Check("CreatedDate", IsInvalidDate(a.CreatedDate)),
		Check("UpdatedDate", IsInvalidDate(a.UpdatedDate)),
		Check("UpdatedDate", IsSameDate(a.UpdatedDate, a.CreatedDate, "CreatedDate")),
		Check("UpdatedDate", IsNotRecent(c, a.UpdatedDate)),
	}
}

// StoredAudit compares a submitted update with the stored record: the
// creation date cannot change and the update date must.
func StoredAudit(submitted, stored models.Audit) []Checked {
	return []Checked{
		Check("CreatedDate", IsNotSameDate(submitted.CreatedDate, stored.CreatedDate, "CreatedDate")),
		Check("UpdatedDate", IsSameDate(submitted.UpdatedDate, stored.UpdatedDate, "UpdatedDate")),
	}
}
