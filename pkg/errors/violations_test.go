package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolations_ZeroValueIsEmpty(t *testing.T) {
	t.Parallel()
	var v Violations
	assert.True(t, v.Empty())
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Parameters())
	assert.Equal(t, "", v.String())

	var nilSet *Violations
	assert.True(t, nilSet.Empty())
	assert.Nil(t, nilSet.Messages("Id"))
}

func TestViolations_PreservesOrder(t *testing.T) {
	t.Parallel()
	var v Violations
	v.Add("UpdatedDate", "Date is not recent")
	v.Add("Id", "Id is required")
	v.Add("UpdatedDate", "Date is the same as CreatedDate")

	assert.Equal(t, []string{"UpdatedDate", "Id"}, v.Parameters())
	assert.Equal(t, []string{"Date is not recent", "Date is the same as CreatedDate"}, v.Messages("UpdatedDate"))
	assert.Equal(t, "UpdatedDate: Date is not recent, Date is the same as CreatedDate; Id: Id is required", v.String())
}

func TestViolations_ReturnsCopies(t *testing.T) {
	t.Parallel()
	var v Violations
	v.Add("Id", "Id is required")

	params := v.Parameters()
	params[0] = "mutated"
	msgs := v.Messages("Id")
	msgs[0] = "mutated"

	assert.Equal(t, []string{"Id"}, v.Parameters())
	assert.Equal(t, []string{"Id is required"}, v.Messages("Id"))
}

func TestViolations_Map(t *testing.T) {
	t.Parallel()
	var v Violations
	v.Add("FirstName", "Text is required")
	v.Add("Email", "Text is required")
	v.Add("Email", "Invalid Email")

	assert.Equal(t, map[string][]string{
		"FirstName": {"Text is required"},
		"Email":     {"Text is required", "Invalid Email"},
	}, v.Map())
}
