package models

import "github.com/google/uuid"

// User is an application account.
type User struct {
	ID               uuid.UUID `json:"id" db:"id"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	Username         string    `json:"username" db:"username"`
	Email            string    `json:"email" db:"email"`
	PhoneNumber      string    `json:"phone_number" db:"phone_number"`
	PasswordHash     []byte    `json:"-" db:"password_hash"`
	PasswordSalt     []byte    `json:"-" db:"password_salt"`
	TwoFactorEnabled bool      `json:"two_factor_enabled" db:"two_factor_enabled"`
	Roles            []string  `json:"roles,omitempty" db:"-"`
	Version          int64     `json:"version" db:"version"`
	Audit
}
