package models

import (
	"time"

	"github.com/google/uuid"
)

// FlightDealStatus is the sales state of a flight deal.
type FlightDealStatus string

const (
	FlightDealStatusOpen    FlightDealStatus = "open"
	FlightDealStatusClosed  FlightDealStatus = "closed"
	FlightDealStatusExpired FlightDealStatus = "expired"
)

// Valid reports whether the status is one of the recognised values.
func (s FlightDealStatus) Valid() bool {
	switch s {
	case FlightDealStatusOpen, FlightDealStatusClosed, FlightDealStatusExpired:
		return true
	default:
		return false
	}
}

// FlightDeal is a discounted fare published by a provider.
type FlightDeal struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	ProviderID    uuid.UUID        `json:"provider_id" db:"provider_id"`
	Airline       string           `json:"airline" db:"airline"`
	DepartureCity string           `json:"departure_city" db:"departure_city"`
	ArrivalCity   string           `json:"arrival_city" db:"arrival_city"`
	DepartureDate time.Time        `json:"departure_date" db:"departure_date"`
	ArrivalDate   time.Time        `json:"arrival_date" db:"arrival_date"`
	PriceCents    int64            `json:"price_cents" db:"price_cents"`
	Status        FlightDealStatus `json:"status" db:"status"`
	Version       int64            `json:"version" db:"version"`
	Audit
}
