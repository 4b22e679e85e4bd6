package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
)

func TestIsInvalidID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Rule{Violated: true, Message: "Id is required"}, IsInvalidID(uuid.Nil))
	assert.False(t, IsInvalidID(uuid.New()).Violated)
}

func TestIsInvalidText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text     string
		violated bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"Harare", false},
		{" x ", false},
	}
	for _, tt := range tests {
		r := IsInvalidText(tt.text)
		assert.Equal(t, tt.violated, r.Violated, "text %q", tt.text)
		assert.Equal(t, "Text is required", r.Message)
	}
}

func TestIsNil(t *testing.T) {
	t.Parallel()
	var missing *string
	present := "admin"

	assert.Equal(t, Rule{Violated: true, Message: "Value is required"}, IsNil(missing))
	assert.False(t, IsNil(&present).Violated)
}

func TestIsBlankValue(t *testing.T) {
	t.Parallel()
	assert.True(t, IsBlankValue(" ").Violated)
	assert.False(t, IsBlankValue("Admin").Violated)
	assert.Equal(t, "Value is required", IsBlankValue("").Message)
}

func TestIsInvalidDate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Rule{Violated: true, Message: "Date is required"}, IsInvalidDate(time.Time{}))
	assert.False(t, IsInvalidDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).Violated)
}

func TestIsNotSameDate(t *testing.T) {
	t.Parallel()
	a := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	b := a.Add(time.Second)

	r := IsNotSameDate(b, a, "CreatedDate")
	assert.True(t, r.Violated)
	assert.Equal(t, "Date is not the same as CreatedDate", r.Message)

	// Equal instants in different locations count as the same date.
	assert.False(t, IsNotSameDate(a, a.In(time.FixedZone("CAT", 2*3600)), "CreatedDate").Violated)
}

func TestIsSameDate(t *testing.T) {
	t.Parallel()
	a := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	r := IsSameDate(a, a, "CreatedDate")
	assert.True(t, r.Violated)
	assert.Equal(t, "Date is the same as CreatedDate", r.Message)
	assert.False(t, IsSameDate(a.Add(time.Minute), a, "CreatedDate").Violated)
}

func TestIsNotRecent(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := clock.Func(func() time.Time { return now })

	tests := []struct {
		name     string
		date     time.Time
		violated bool
	}{
		{"now", now, false},
		{"exactly one minute ago", now.Add(-time.Minute), false},
		{"exactly one minute ahead", now.Add(time.Minute), false},
		{"just over a minute ago", now.Add(-time.Minute - time.Nanosecond), true},
		{"far in the past", now.Add(-24 * time.Hour), true},
		{"far in the future", now.Add(time.Hour), true},
		{"zero time", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := IsNotRecent(c, tt.date)
			assert.Equal(t, tt.violated, r.Violated)
			assert.Equal(t, "Date is not recent", r.Message)
		})
	}
}

func TestIsNotValidEmail(t *testing.T) {
	t.Parallel()
	valid := []string{"jane@jaunts.co.zw", "john.doe@example.com", "a-b_c@mail-host.org"}
	invalid := []string{"", "jane", "jane@", "@example.com", "jane@example", "jane doe@example.com"}

	for _, e := range valid {
		assert.False(t, IsNotValidEmail(e).Violated, "expected %q to be valid", e)
	}
	for _, e := range invalid {
		r := IsNotValidEmail(e)
		assert.True(t, r.Violated, "expected %q to be invalid", e)
		assert.Equal(t, "Invalid Email", r.Message)
	}
}

func TestIsInvalidUser(t *testing.T) {
	t.Parallel()
	type user struct{}
	assert.Equal(t, Rule{Violated: true, Message: "User not found"}, IsInvalidUser[user](nil))
	assert.False(t, IsInvalidUser(&user{}).Violated)
}
