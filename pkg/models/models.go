// Package models defines the records handled by the Jaunts foundation
// services.
//
// Every persisted record carries audit fields (CreatedBy, UpdatedBy,
// CreatedDate, UpdatedDate) and, where it is stored in a table with
// optimistic locking, a Version token. Stores increment Version on every
// successful update and reject updates whose Version is stale.
//
// Fields carry JSON tags for transport and db tags for the SQL stores.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit holds the audit fields shared by persisted records.
type Audit struct {
	CreatedBy   uuid.UUID `json:"created_by" db:"created_by"`
	UpdatedBy   uuid.UUID `json:"updated_by" db:"updated_by"`
	CreatedDate time.Time `json:"created_date" db:"created_date"`
	UpdatedDate time.Time `json:"updated_date" db:"updated_date"`
}
