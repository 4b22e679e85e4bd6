package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	t.Parallel()
	violations := &Violations{}
	violations.Add("Id", "Id is required")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "error without cause",
			err:  New(CodeNotFound, "Couldn't find record with id: 42."),
			want: "NF_001: Couldn't find record with id: 42.",
		},
		{
			name: "error with raw cause",
			err: &Error{
				Code:    CodeFailedStorage,
				Message: "Failed fleet storage error occurred, please contact support.",
				Cause:   errors.New("connection refused"),
			},
			want: "STOR_001: Failed fleet storage error occurred, please contact support.: connection refused",
		},
		{
			name: "error with violations",
			err: &Error{
				Code:       CodeInvalid,
				Message:    "Invalid Fleet. Please correct the errors and try again.",
				Violations: violations,
			},
			want: "INV_001: Invalid Fleet. Please correct the errors and try again. [Id: Id is required]",
		},
		{
			name: "nested domain error cause",
			err: &Error{
				Code:    CodeDependency,
				Message: "Fleet dependency error occurred, contact support.",
				Cause:   New(CodeLocked, "Locked fleet record exception, please try again later."),
			},
			want: "DEP_001: Fleet dependency error occurred, contact support.: " +
				"CONF_002: Locked fleet record exception, please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("underlying error")
	err := Wrap(cause, CodeFailedService, "failed")

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, New(CodeNotFound, "missing").Unwrap())
}

func TestError_Category(t *testing.T) {
	t.Parallel()
	assert.Equal(t, CategoryDependency, New(CodeDependency, "x").Category())
	assert.Equal(t, Category(""), New(CodeFailedStorage, "x").Category())
}

func TestError_WithDetails_DoesNotMutateOriginal(t *testing.T) {
	t.Parallel()
	original := New(CodeNotFound, "missing").WithDetail("id", "a")

	updated := original.WithDetails(map[string]any{"attachment_id": "b"})

	require.Len(t, original.Details, 1)
	assert.Equal(t, map[string]any{"id": "a", "attachment_id": "b"}, updated.Details)
	assert.Equal(t, original.Code, updated.Code)
	assert.Equal(t, original.Message, updated.Message)
}

func TestError_WithDetail_KeepsViolations(t *testing.T) {
	t.Parallel()
	v := &Violations{}
	v.Add("Name", "Text is required")
	err := Invalid("Invalid Fleet.", v).WithDetail("op", "AddFleet")

	assert.Same(t, v, err.Violations)
	assert.Equal(t, "AddFleet", err.Details["op"])
}

func TestError_Format(t *testing.T) {
	t.Parallel()
	v := &Violations{}
	v.Add("Id", "Id is required")
	inner := Invalid("Invalid Fleet.", v)
	outer := Wrap(inner, CodeValidation, "Invalid input, contact support.").WithDetail("op", "RemoveFleetByID")

	assert.Equal(t, outer.Error(), fmt.Sprintf("%v", outer))
	assert.Equal(t, outer.Error(), fmt.Sprintf("%s", outer))
	assert.Equal(t, fmt.Sprintf("%q", outer.Error()), fmt.Sprintf("%q", outer))

	detailed := fmt.Sprintf("%+v", outer)
	assert.Contains(t, detailed, `Code: "VAL_001"`)
	assert.Contains(t, detailed, "Details: map[op:RemoveFleetByID]")
	assert.Contains(t, detailed, `Cause: Error{Code: "INV_001"`)
	assert.Contains(t, detailed, `Violations: "Id: Id is required"`)
}
