package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType represents a verification artifact type
type DocumentType string

const (
	DocumentTypeBusinessRegistration DocumentType = "business_registration"
	DocumentTypeIDDocument           DocumentType = "id_document"
	DocumentTypeUtilityBill          DocumentType = "utility_bill"
	DocumentTypeAdditional           DocumentType = "additional"
)

// RequiredDocumentTypes are the three types a merchant must submit before
// verification is possible.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeBusinessRegistration,
	DocumentTypeIDDocument,
	DocumentTypeUtilityBill,
}

// IsRequired reports whether t is one of the required document types
func (t DocumentType) IsRequired() bool {
	for _, rt := range RequiredDocumentTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// IsValid reports whether t is a known document type
func (t DocumentType) IsValid() bool {
	return t.IsRequired() || t == DocumentTypeAdditional
}

// DocumentStatus represents per-document review state, independent of the
// merchant-level onboarding status
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// Document represents one uploaded verification artifact. The object storage
// collaborator owns the bytes; this record owns the metadata and review state.
type Document struct {
	ID               uuid.UUID      `json:"id"`
	MerchantID       uuid.UUID      `json:"merchantId"`
	Type             DocumentType   `json:"type"`
	StorageLocator   string         `json:"-"`
	OriginalFilename string         `json:"originalFilename"`
	Size             int64          `json:"size"`
	MimeType         string         `json:"mimeType"`
	Status           DocumentStatus `json:"status"`
	ReviewedBy       null.String    `json:"reviewedBy,omitempty"`
	ReviewedAt       null.Time      `json:"reviewedAt,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	Active           bool           `json:"active"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        null.Time      `json:"-"`
}

// DocumentFileMeta describes an uploaded file handed over by the transport layer
type DocumentFileMeta struct {
	StorageLocator   string
	OriginalFilename string
	Size             int64
	MimeType         string
}

// DocumentStats aggregates document counts across all merchants
type DocumentStats struct {
	Total    int64                    `json:"total"`
	ByStatus map[DocumentStatus]int64 `json:"byStatus"`
	ByType   map[DocumentType]int64   `json:"byType"`
}
