// Package fleets is the foundation service for fleet vehicles.
//
// Every operation validates its input before any I/O, reads the stored
// record when it needs one, and then persists. The first failure of any
// stage is routed once through the fleet [faults.Router], which logs it
// and returns the categorised fault.
package fleets

import (
	"context"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
	"github.com/StricklySoft/jaunts-core/pkg/faults"
	"github.com/StricklySoft/jaunts-core/pkg/logging"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/stores/sqlstore"
	"github.com/StricklySoft/jaunts-core/pkg/validation"
)

// Entity is the fleet fault vocabulary.
var Entity = faults.Entity{Name: "Fleet"}

// Store persists fleets.
type Store interface {
	Insert(ctx context.Context, f models.Fleet) (models.Fleet, error)
	SelectByID(ctx context.Context, id uuid.UUID) (models.Fleet, error)
	SelectAll(ctx context.Context) ([]models.Fleet, error)
	Update(ctx context.Context, f models.Fleet) (models.Fleet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ Store = (*sqlstore.Fleets)(nil)

// Service is safe for concurrent use.
type Service struct {
	store  Store
	clock  clock.Clock
	router *faults.Router
}

// New returns a fleet service.
func New(store Store, clk clock.Clock, logger logging.Logger) *Service {
	return &Service{store: store, clock: clk, router: faults.NewRouter(Entity, logger)}
}

// AddFleet validates and stores a new fleet.
func (s *Service) AddFleet(ctx context.Context, f *models.Fleet) (*models.Fleet, error) {
	return faults.Try(ctx, s.router, func() (*models.Fleet, error) {
		if err := s.validateAdd(f); err != nil {
			return nil, err
		}
		stored, err := s.store.Insert(ctx, *f)
		if err != nil {
			return nil, err
		}
		return &stored, nil
	})
}

// RetrieveAllFleets returns every stored fleet.
func (s *Service) RetrieveAllFleets(ctx context.Context) ([]models.Fleet, error) {
	return faults.Try(ctx, s.router, func() ([]models.Fleet, error) {
		return s.store.SelectAll(ctx)
	})
}

// RetrieveFleetByID returns the fleet with id.
func (s *Service) RetrieveFleetByID(ctx context.Context, id uuid.UUID) (*models.Fleet, error) {
	return faults.Try(ctx, s.router, func() (*models.Fleet, error) {
		return s.lookup(ctx, id)
	})
}

// ModifyFleet validates f against its stored version and writes it.
func (s *Service) ModifyFleet(ctx context.Context, f *models.Fleet) (*models.Fleet, error) {
	return faults.Try(ctx, s.router, func() (*models.Fleet, error) {
		if err := s.validateModify(f); err != nil {
			return nil, err
		}
		stored, err := s.lookup(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		if err := validation.Validate(Entity.Name, validation.StoredAudit(f.Audit, stored.Audit)...); err != nil {
			return nil, err
		}
		updated, err := s.store.Update(ctx, *f)
		if err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

// RemoveFleetByID deletes the fleet with id and returns it.
func (s *Service) RemoveFleetByID(ctx context.Context, id uuid.UUID) (*models.Fleet, error) {
	return faults.Try(ctx, s.router, func() (*models.Fleet, error) {
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

// lookup validates id and reads the stored fleet.
func (s *Service) lookup(ctx context.Context, id uuid.UUID) (*models.Fleet, error) {
	if err := validation.Validate(Entity.Name, validation.Check("Id", validation.IsInvalidID(id))); err != nil {
		return nil, err
	}
	f, err := s.store.SelectByID(ctx, id)
	if err != nil {
		return nil, faults.RecordNotFound(err, id)
	}
	return &f, nil
}

func (s *Service) validateAdd(f *models.Fleet) error {
	if err := validation.Present(Entity.Name, f); err != nil {
		return err
	}
	checks := append(fieldChecks(f), validation.AddAudit(s.clock, f.Audit)...)
	return validation.Validate(Entity.Name, checks...)
}

func (s *Service) validateModify(f *models.Fleet) error {
	if err := validation.Present(Entity.Name, f); err != nil {
		return err
	}
	checks := append(fieldChecks(f), validation.ModifyAudit(s.clock, f.Audit)...)
	return validation.Validate(Entity.Name, checks...)
}

func fieldChecks(f *models.Fleet) []validation.Checked {
	return []validation.Checked{
		validation.Check("Id", validation.IsInvalidID(f.ID)),
		validation.Check("ProviderId", validation.IsInvalidID(f.ProviderID)),
		validation.Check("Title", validation.IsInvalidText(f.Title)),
		validation.Check("Description", validation.IsInvalidText(f.Description)),
		validation.Check("PlateNumber", validation.IsInvalidText(f.PlateNumber)),
		validation.Check("Seats", validation.When(f.Seats <= 0, "Seats must be positive")),
		validation.Check("Status", validation.When(!f.Status.Valid(), "Status is invalid")),
	}
}
