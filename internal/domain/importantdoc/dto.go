package importantdoc

import (
	"time"

	"atrium/internal/domain"
	"atrium/internal/domain/explorer"
)

// Document is the list row of an important document.
type Document struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	DocumentTypeID *int64      `json:"documentTypeId"`
	TypeLabel      string      `json:"typeLabel,omitempty"`
	IssuedAt       *time.Time  `json:"issuedAt"`
	ExpiresAt      *time.Time  `json:"expiresAt"`
	Status         Status      `json:"status"`
	MimeType       string      `json:"mimeType"`
	OriginalName   string      `json:"originalName"`
	Size           int64       `json:"size"`
	OwnerRole      domain.Role `json:"ownerRole"`
	CreatedAt      time.Time   `json:"createdAt"`
	ModifiedAt     time.Time   `json:"modifiedAt"`
}

type UploadInput struct {
	Name           string
	DocumentTypeID *int64
	IssuedAt       *time.Time
	ExpiresAt      *time.Time
	OwnerRole      domain.Role
	File           *explorer.UploadFile
}

func toDocument(d *domain.Document, status Status) Document {
	return Document{
		ID:             d.ID,
		Name:           d.Name,
		DocumentTypeID: d.DocumentTypeID,
		TypeLabel:      d.TypeLabel,
		IssuedAt:       d.IssuedAt,
		ExpiresAt:      d.ExpiresAt,
		Status:         status,
		MimeType:       d.MimeType,
		OriginalName:   d.OriginalName,
		Size:           d.Size,
		OwnerRole:      d.OwnerRole,
		CreatedAt:      d.CreatedAt,
		ModifiedAt:     d.UpdatedAt,
	}
}
