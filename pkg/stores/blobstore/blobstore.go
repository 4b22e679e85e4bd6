// Package blobstore keeps advert attachments as objects in an
// S3-compatible bucket.
//
// An attachment is stored under "adverts/<advert id>/<attachment id>".
// Its file name and audit fields travel as object user metadata, so a
// single GET returns the whole record.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	miniocl "github.com/StricklySoft/jaunts-core/pkg/clients/minio"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
)

// Objects is the object API the store needs. [*miniocl.Client]
// satisfies it.
type Objects interface {
	CreateObject(ctx context.Context, key string, content []byte, contentType string, meta map[string]string) (minio.UploadInfo, error)
	GetObject(ctx context.Context, key string) (*miniocl.Object, error)
	RemoveObject(ctx context.Context, key string) error
}

var _ Objects = (*miniocl.Client)(nil)

// User metadata keys.
const (
	metaFileName    = "file-name"
	metaCreatedBy   = "created-by"
	metaUpdatedBy   = "updated-by"
	metaCreatedDate = "created-date"
	metaUpdatedDate = "updated-date"
)

// ErrAttachmentExists is the cause of the uniqueness fault Insert returns
// for an occupied key.
var ErrAttachmentExists = errors.New("blobstore: attachment already exists")

// Attachments stores [models.AdvertAttachment] objects.
type Attachments struct {
	objects Objects
}

// New returns an attachment store over objects.
func New(objects Objects) *Attachments {
	return &Attachments{objects: objects}
}

// Key returns the object key of an attachment.
func Key(advertID, attachmentID uuid.UUID) string {
	return "adverts/" + advertID.String() + "/" + attachmentID.String()
}

// Insert uploads a. An attachment already stored under the same ids is a
// uniqueness fault. The upload is conditional on the key being free, so
// concurrent inserts of one attachment leave exactly one winner.
func (s *Attachments) Insert(ctx context.Context, a models.AdvertAttachment) (models.AdvertAttachment, error) {
	key := Key(a.AdvertID, a.AttachmentID)
	_, err := s.objects.CreateObject(ctx, key, a.Content, a.ContentType, encodeMeta(a))
	if storage.KindOf(err) == storage.KindUniqueness {
		return models.AdvertAttachment{}, storage.NewFault(storage.KindUniqueness, "blobstore: insert "+key, ErrAttachmentExists)
	}
	if err != nil {
		return models.AdvertAttachment{}, err
	}
	a.Size = int64(len(a.Content))
	return a, nil
}

// SelectByID downloads the attachment or returns [storage.ErrNotFound].
func (s *Attachments) SelectByID(ctx context.Context, advertID, attachmentID uuid.UUID) (models.AdvertAttachment, error) {
	obj, err := s.objects.GetObject(ctx, Key(advertID, attachmentID))
	if err != nil {
		return models.AdvertAttachment{}, err
	}
	a, err := decode(advertID, attachmentID, obj.Info)
	if err != nil {
		return models.AdvertAttachment{}, err
	}
	a.Content = obj.Content
	return a, nil
}

// Delete removes the attachment. Removing a missing object succeeds, so
// callers check existence first.
func (s *Attachments) Delete(ctx context.Context, advertID, attachmentID uuid.UUID) error {
	return s.objects.RemoveObject(ctx, Key(advertID, attachmentID))
}

func encodeMeta(a models.AdvertAttachment) map[string]string {
	return map[string]string{
		metaFileName:    a.FileName,
		metaCreatedBy:   a.CreatedBy.String(),
		metaUpdatedBy:   a.UpdatedBy.String(),
		metaCreatedDate: a.CreatedDate.UTC().Format(time.RFC3339Nano),
		metaUpdatedDate: a.UpdatedDate.UTC().Format(time.RFC3339Nano),
	}
}

// decode rebuilds the record from object metadata. S3 canonicalises
// metadata keys, so lookups ignore case.
func decode(advertID, attachmentID uuid.UUID, info minio.ObjectInfo) (models.AdvertAttachment, error) {
	get := func(key string) string {
		for k, v := range info.UserMetadata {
			if strings.EqualFold(strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-"), key) {
				return v
			}
		}
		return ""
	}

	a := models.AdvertAttachment{
		AdvertID:     advertID,
		AttachmentID: attachmentID,
		FileName:     get(metaFileName),
		ContentType:  info.ContentType,
		Size:         info.Size,
	}

	var err error
	if a.CreatedBy, err = uuid.Parse(get(metaCreatedBy)); err != nil {
		return a, fmt.Errorf("blobstore: %s metadata: %w", metaCreatedBy, err)
	}
	if a.UpdatedBy, err = uuid.Parse(get(metaUpdatedBy)); err != nil {
		return a, fmt.Errorf("blobstore: %s metadata: %w", metaUpdatedBy, err)
	}
	if a.CreatedDate, err = time.Parse(time.RFC3339Nano, get(metaCreatedDate)); err != nil {
		return a, fmt.Errorf("blobstore: %s metadata: %w", metaCreatedDate, err)
	}
	if a.UpdatedDate, err = time.Parse(time.RFC3339Nano, get(metaUpdatedDate)); err != nil {
		return a, fmt.Errorf("blobstore: %s metadata: %w", metaUpdatedDate, err)
	}
	return a, nil
}
