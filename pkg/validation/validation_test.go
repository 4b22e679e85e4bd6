package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
)

func TestValidate_NoViolations(t *testing.T) {
	t.Parallel()
	err := Validate("Fleet",
		Check("Id", When(false, "Id is required")),
		Check("Title", When(false, "Text is required")),
	)
	assert.NoError(t, err)
}

func TestValidate_NoChecks(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Validate("Fleet"))
}

func TestValidate_ReportsEveryViolationInOrder(t *testing.T) {
	t.Parallel()
	err := Validate("Fleet",
		Check("Title", When(true, "Text is required")),
		Check("Id", When(false, "Id is required")),
		Check("CreatedDate", When(true, "Date is required")),
		Check("UpdatedDate", When(true, "Date is required")),
	)

	require.Error(t, err)
	e, ok := sserr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, sserr.CodeInvalid, e.Code)
	assert.Equal(t, "Invalid Fleet. Please correct the errors and try again.", e.Message)
	assert.Equal(t, []string{"Title", "CreatedDate", "UpdatedDate"}, e.Violations.Parameters())
}

func TestValidate_AccumulatesMessagesPerParameter(t *testing.T) {
	t.Parallel()
	err := Validate("FlightDeal",
		Check("UpdatedDate", When(true, "Date is required")),
		Check("UpdatedDate", When(true, "Date is not recent")),
	)

	v := sserr.ViolationsOf(err)
	require.NotNil(t, v)
	assert.Equal(t, []string{"Date is required", "Date is not recent"}, v.Messages("UpdatedDate"))
}

func TestValidate_IsNotACategorizedFault(t *testing.T) {
	t.Parallel()
	err := Validate("Fleet", Check("Id", When(true, "Id is required")))

	assert.False(t, sserr.IsCategorized(err))
}

func TestPresent(t *testing.T) {
	t.Parallel()
	type fleet struct{}

	assert.NoError(t, Present("Fleet", &fleet{}))

	err := Present[fleet]("Fleet", nil)
	e, ok := sserr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, sserr.CodeNullInput, e.Code)
	assert.Equal(t, "Fleet is null.", e.Message)
}
