// Package fixtures builds valid Jaunts records and shared constants for
// tests.
//
// Factories return records that pass add validation against [Now]: both
// audit dates equal Now and every required field is filled. Tests then
// break exactly the field they are about.
package fixtures

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/models"
)

// Now is the fixed instant test clocks are set to.
var Now = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

// Identity and configuration values shared across tests.
const (
	TestIssuer    = "https://auth.jaunts.test"
	TestSecret    = "test-signing-secret-with-enough-bytes"
	TestEnvPrefix = "JAUNTSTEST"

	TestMailFrom     = "noreply@jaunts.co.zw"
	TestMailFromName = "Jaunts"
	TestMailSubject  = "Verify your email"

	TestPassword = "S3cure!passw0rd"
)

// Fleet returns a valid, never-modified fleet record.
func Fleet() *models.Fleet {
	actor := uuid.New()
	return &models.Fleet{
		ID:          uuid.New(),
		ProviderID:  uuid.New(),
		Title:       "Toyota Quantum",
		Description: "14 seater shuttle",
		PlateNumber: "AEZ 1234",
		Seats:       14,
		Status:      models.FleetStatusActive,
		Version:     1,
		Audit:       audit(actor),
	}
}

// FlightDeal returns a valid, never-modified flight deal.
func FlightDeal() *models.FlightDeal {
	actor := uuid.New()
	return &models.FlightDeal{
		ID:            uuid.New(),
		ProviderID:    uuid.New(),
		Airline:       "Air Zimbabwe",
		DepartureCity: "Harare",
		ArrivalCity:   "Victoria Falls",
		DepartureDate: Now.Add(72 * time.Hour),
		ArrivalDate:   Now.Add(73 * time.Hour),
		PriceCents:    15900,
		Status:        models.FlightDealStatusOpen,
		Version:       1,
		Audit:         audit(actor),
	}
}

// AdvertAttachment returns a valid attachment with a small text body.
func AdvertAttachment() *models.AdvertAttachment {
	content := []byte("route map")
	return &models.AdvertAttachment{
		AdvertID:     uuid.New(),
		AttachmentID: uuid.New(),
		FileName:     "route.txt",
		ContentType:  "text/plain",
		Size:         int64(len(content)),
		Content:      content,
		Audit:        audit(uuid.New()),
	}
}

// User returns a valid user without roles or a password hash.
func User() *models.User {
	id := uuid.New()
	return &models.User{
		ID:          id,
		FirstName:   "Tendai",
		LastName:    "Moyo",
		Username:    fmt.Sprintf("tmoyo-%s", id.String()[:8]),
		Email:       "tendai.moyo@jaunts.co.zw",
		PhoneNumber: "+263771234567",
		Version:     1,
		Audit:       audit(id),
	}
}

// Modified returns a copy of a with UpdatedBy and UpdatedDate moved
// forward by d, as a modify request for a stored record would carry.
func Modified(a models.Audit, d time.Duration) models.Audit {
	a.UpdatedBy = uuid.New()
	a.UpdatedDate = a.UpdatedDate.Add(d)
	return a
}

func audit(actor uuid.UUID) models.Audit {
	return models.Audit{
		CreatedBy:   actor,
		UpdatedBy:   actor,
		CreatedDate: Now,
		UpdatedDate: Now,
	}
}
