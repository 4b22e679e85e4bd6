// Package attachments is the foundation service for advert attachments.
//
// Attachments are addressed by the pair (advert id, attachment id). A
// lookup that finds nothing is reported as a Validation fault: the caller
// supplied a pair that does not exist.
package attachments

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
	"github.com/StricklySoft/jaunts-core/pkg/faults"
	"github.com/StricklySoft/jaunts-core/pkg/logging"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
	"github.com/StricklySoft/jaunts-core/pkg/stores/blobstore"
	"github.com/StricklySoft/jaunts-core/pkg/validation"
)

// Entity is the attachment fault vocabulary.
var Entity = faults.Entity{Name: "AdvertAttachment"}

// Store persists attachments.
type Store interface {
	Insert(ctx context.Context, a models.AdvertAttachment) (models.AdvertAttachment, error)
	SelectByID(ctx context.Context, advertID, attachmentID uuid.UUID) (models.AdvertAttachment, error)
	Delete(ctx context.Context, advertID, attachmentID uuid.UUID) error
}

var _ Store = (*blobstore.Attachments)(nil)

// Service is safe for concurrent use.
type Service struct {
	store  Store
	clock  clock.Clock
	router *faults.Router
}

// New returns an attachment service.
func New(store Store, clk clock.Clock, logger logging.Logger) *Service {
	return &Service{store: store, clock: clk, router: faults.NewRouter(Entity, logger)}
}

// AddAdvertAttachment validates and stores a new attachment.
func (s *Service) AddAdvertAttachment(ctx context.Context, a *models.AdvertAttachment) (*models.AdvertAttachment, error) {
	return faults.Try(ctx, s.router, func() (*models.AdvertAttachment, error) {
		if err := validation.Present(Entity.Name, a); err != nil {
			return nil, err
		}
		checks := append([]validation.Checked{
			validation.Check("AdvertId", validation.IsInvalidID(a.AdvertID)),
			validation.Check("AttachmentId", validation.IsInvalidID(a.AttachmentID)),
			validation.Check("FileName", validation.IsInvalidText(a.FileName)),
			validation.Check("ContentType", validation.IsInvalidText(a.ContentType)),
			validation.Check("Content", validation.When(len(a.Content) == 0, "Value is required")),
		}, validation.AddAudit(s.clock, a.Audit)...)
		if err := validation.Validate(Entity.Name, checks...); err != nil {
			return nil, err
		}
		stored, err := s.store.Insert(ctx, *a)
		if err != nil {
			return nil, err
		}
		return &stored, nil
	})
}

// RetrieveAdvertAttachmentByID returns the attachment with the given ids.
func (s *Service) RetrieveAdvertAttachmentByID(ctx context.Context, advertID, attachmentID uuid.UUID) (*models.AdvertAttachment, error) {
	return faults.Try(ctx, s.router, func() (*models.AdvertAttachment, error) {
		return s.lookup(ctx, advertID, attachmentID)
	})
}

// RemoveAdvertAttachmentByID deletes the attachment and returns it.
func (s *Service) RemoveAdvertAttachmentByID(ctx context.Context, advertID, attachmentID uuid.UUID) (*models.AdvertAttachment, error) {
	return faults.Try(ctx, s.router, func() (*models.AdvertAttachment, error) {
		stored, err := s.lookup(ctx, advertID, attachmentID)
		if err != nil {
			return nil, err
		}
		if err := s.store.Delete(ctx, advertID, attachmentID); err != nil {
			return nil, err
		}
		return stored, nil
	})
}

func (s *Service) lookup(ctx context.Context, advertID, attachmentID uuid.UUID) (*models.AdvertAttachment, error) {
	err := validation.Validate(Entity.Name,
		validation.Check("AdvertId", validation.IsInvalidID(advertID)),
		validation.Check("AttachmentId", validation.IsInvalidID(attachmentID)),
	)
	if err != nil {
		return nil, err
	}
	a, err := s.store.SelectByID(ctx, advertID, attachmentID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, s.router.Validation(ctx, faults.ExplainNotFound(err, "%s", NotFoundMessage(advertID, attachmentID)))
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// NotFoundMessage is the NotFound message for an attachment lookup.
func NotFoundMessage(advertID, attachmentID uuid.UUID) string {
	return "Couldn't find attachment with Advert id: " + advertID.String() +
		" and attachment id: " + attachmentID.String() + "."
}
