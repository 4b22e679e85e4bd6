// Package flightdeals is the foundation service for flight deals.
package flightdeals

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
	"github.com/StricklySoft/jaunts-core/pkg/faults"
	"github.com/StricklySoft/jaunts-core/pkg/logging"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/stores/sqlstore"
	"github.com/StricklySoft/jaunts-core/pkg/validation"
)

// Entity is the flight deal fault vocabulary.
var Entity = faults.Entity{Name: "FlightDeal"}

// Store persists flight deals.
type Store interface {
	Insert(ctx context.Context, d models.FlightDeal) (models.FlightDeal, error)
	SelectByID(ctx context.Context, id uuid.UUID) (models.FlightDeal, error)
	SelectOpen(ctx context.Context, from time.Time) ([]models.FlightDeal, error)
	Update(ctx context.Context, d models.FlightDeal) (models.FlightDeal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ Store = (*sqlstore.FlightDeals)(nil)

// Service is safe for concurrent use.
type Service struct {
	store  Store
	clock  clock.Clock
	router *faults.Router
}

// New returns a flight deal service.
func New(store Store, clk clock.Clock, logger logging.Logger) *Service {
	return &Service{store: store, clock: clk, router: faults.NewRouter(Entity, logger)}
}

// AddFlightDeal validates and stores a new deal.
func (s *Service) AddFlightDeal(ctx context.Context, d *models.FlightDeal) (*models.FlightDeal, error) {
	return faults.Try(ctx, s.router, func() (*models.FlightDeal, error) {
		if err := validation.Present(Entity.Name, d); err != nil {
			return nil, err
		}
		checks := append(fieldChecks(d), validation.AddAudit(s.clock, d.Audit)...)
		if err := validation.Validate(Entity.Name, checks...); err != nil {
			return nil, err
		}
		stored, err := s.store.Insert(ctx, *d)
		if err != nil {
			return nil, err
		}
		return &stored, nil
	})
}

// RetrieveOpenFlightDeals returns the open deals that have not departed
// yet, soonest first.
func (s *Service) RetrieveOpenFlightDeals(ctx context.Context) ([]models.FlightDeal, error) {
	return faults.Try(ctx, s.router, func() ([]models.FlightDeal, error) {
		return s.store.SelectOpen(ctx, s.clock.Now())
	})
}

// RetrieveFlightDealByID returns the deal with id.
func (s *Service) RetrieveFlightDealByID(ctx context.Context, id uuid.UUID) (*models.FlightDeal, error) {
	return faults.Try(ctx, s.router, func() (*models.FlightDeal, error) {
		return s.lookup(ctx, id)
	})
}

// ModifyFlightDeal validates d against its stored version and writes it.
func (s *Service) ModifyFlightDeal(ctx context.Context, d *models.FlightDeal) (*models.FlightDeal, error) {
	return faults.Try(ctx, s.router, func() (*models.FlightDeal, error) {
		if err := validation.Present(Entity.Name, d); err != nil {
			return nil, err
		}
		checks := append(fieldChecks(d), validation.ModifyAudit(s.clock, d.Audit)...)
		if err := validation.Validate(Entity.Name, checks...); err != nil {
			return nil, err
		}
		stored, err := s.lookup(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		if err := validation.Validate(Entity.Name, validation.StoredAudit(d.Audit, stored.Audit)...); err != nil {
			return nil, err
		}
		updated, err := s.store.Update(ctx, *d)
		if err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

// RemoveFlightDealByID deletes the deal with id and returns it.
func (s *Service) RemoveFlightDealByID(ctx context.Context, id uuid.UUID) (*models.FlightDeal, error) {
	return faults.Try(ctx, s.router, func() (*models.FlightDeal, error) {
		stored, err := s.lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.store.Delete(ctx, id); err != nil {
			return nil, err
		}
		return stored, nil
	})
}

func (s *Service) lookup(ctx context.Context, id uuid.UUID) (*models.FlightDeal, error) {
	if err := validation.Validate(Entity.Name, validation.Check("Id", validation.IsInvalidID(id))); err != nil {
		return nil, err
	}
	d, err := s.store.SelectByID(ctx, id)
	if err != nil {
		return nil, faults.RecordNotFound(err, id)
	}
	return &d, nil
}

func fieldChecks(d *models.FlightDeal) []validation.Checked {
	return []validation.Checked{
		validation.Check("Id", validation.IsInvalidID(d.ID)),
		validation.Check("ProviderId", validation.IsInvalidID(d.ProviderID)),
		validation.Check("Airline", validation.IsInvalidText(d.Airline)),
		validation.Check("DepartureCity", validation.IsInvalidText(d.DepartureCity)),
		validation.Check("ArrivalCity", validation.IsInvalidText(d.ArrivalCity)),
		validation.Check("DepartureDate", validation.IsInvalidDate(d.DepartureDate)),
		validation.Check("ArrivalDate", validation.IsInvalidDate(d.ArrivalDate)),
		validation.Check("ArrivalDate", validation.When(
			!d.DepartureDate.IsZero() && !d.ArrivalDate.IsZero() && !d.ArrivalDate.After(d.DepartureDate),
			"Date is not after DepartureDate")),
		validation.Check("PriceCents", validation.When(d.PriceCents <= 0, "Price must be positive")),
		validation.Check("Status", validation.When(!d.Status.Valid(), "Status is invalid")),
	}
}
