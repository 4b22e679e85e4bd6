package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
)

// RecentWindow is the maximum distance between a submitted timestamp and
// the current time for the timestamp to count as recent.
const RecentWindow = time.Minute

var emailPattern = regexp.MustCompile(`^([\w\.\-]+)@([\w\-]+)((\.(\w){2,3})+)$`)

// IsInvalidID is violated for the zero UUID.
func IsInvalidID(id uuid.UUID) Rule {
	return When(id == uuid.Nil, "Id is required")
}

// IsInvalidText is violated for empty or whitespace-only text.
func IsInvalidText(text string) Rule {
	return When(strings.TrimSpace(text) == "", "Text is required")
}

// IsNil is violated when v is nil.
func IsNil[T any](v *T) Rule {
	return When(v == nil, "Value is required")
}

// IsBlankValue is violated for an empty or whitespace-only value that is
// not free text, such as a role name.
func IsBlankValue(value string) Rule {
	return When(strings.TrimSpace(value) == "", "Value is required")
}

// IsInvalidDate is violated for the zero time.
func IsInvalidDate(date time.Time) Rule {
	return When(date.IsZero(), "Date is required")
}

// IsNotSameDate is violated when first and second differ. secondName is
// used in the message.
func IsNotSameDate(first, second time.Time, secondName string) Rule {
	return When(!first.Equal(second), fmt.Sprintf("Date is not the same as %s", secondName))
}

// IsSameDate is violated when first and second are equal.
func IsSameDate(first, second time.Time, secondName string) Rule {
	return When(first.Equal(second), fmt.Sprintf("Date is the same as %s", secondName))
}

// IsNotRecent is violated when date is more than [RecentWindow] away from
// the clock's current time, in either direction.
func IsNotRecent(c clock.Clock, date time.Time) Rule {
	diff := c.Now().Sub(date)
	if diff < 0 {
		diff = -diff
	}
	return When(diff > RecentWindow, "Date is not recent")
}

// IsNotValidEmail is violated when email does not look like an address.
func IsNotValidEmail(email string) Rule {
	return When(!emailPattern.MatchString(email), "Invalid Email")
}

// IsInvalidUser is violated when the resolved user is nil.
func IsInvalidUser[T any](user *T) Rule {
	return When(user == nil, "User not found")
}
