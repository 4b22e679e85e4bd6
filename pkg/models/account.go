package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountDetails is the caller-facing view of a user account together
// with a freshly issued access token.
type AccountDetails struct {
	UserID           uuid.UUID `json:"user_id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	Roles            []string  `json:"roles,omitempty"`
	Token            string    `json:"token"`
	ExpiresAt        time.Time `json:"expires_at"`
}
