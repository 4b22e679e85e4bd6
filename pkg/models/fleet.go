package models

import "github.com/google/uuid"

// FleetStatus is the operational state of a fleet vehicle.
type FleetStatus string

const (
	FleetStatusActive      FleetStatus = "active"
	FleetStatusInactive    FleetStatus = "inactive"
	FleetStatusMaintenance FleetStatus = "maintenance"
)

// Valid reports whether the status is one of the recognised values.
func (s FleetStatus) Valid() bool {
	switch s {
	case FleetStatusActive, FleetStatusInactive, FleetStatusMaintenance:
		return true
	default:
		return false
	}
}

// Fleet is a vehicle offered by a transport provider.
type Fleet struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	ProviderID  uuid.UUID   `json:"provider_id" db:"provider_id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	PlateNumber string      `json:"plate_number" db:"plate_number"`
	Seats       int         `json:"seats" db:"seats"`
	Status      FleetStatus `json:"status" db:"status"`
	Version     int64       `json:"version" db:"version"`
	Audit
}
