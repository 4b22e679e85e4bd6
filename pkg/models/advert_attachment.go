package models

import "github.com/google/uuid"

// AdvertAttachment is a file attached to an advert. It is identified by
// the pair (AdvertID, AttachmentID).
type AdvertAttachment struct {
	AdvertID     uuid.UUID `json:"advert_id"`
	AttachmentID uuid.UUID `json:"attachment_id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Content      []byte    `json:"-"`
	Audit
}
