package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
)

// DocumentRepository defines verification document metadata operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	// GetActiveByType returns the single active record for a merchant and
	// required document type, or ErrNotFound.
	GetActiveByType(ctx context.Context, merchantID uuid.UUID, docType entities.DocumentType) (*entities.Document, error)
	ListForMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.Document, error)
	ListActiveForMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.Document, error)
	Update(ctx context.Context, doc *entities.Document) error
	// Deactivate marks a record inactive so a re-submission can supersede it.
	// Records are never physically removed.
	Deactivate(ctx context.Context, id uuid.UUID) error
	SetStatusForMerchant(ctx context.Context, merchantID uuid.UUID, status entities.DocumentStatus) error
	GetStats(ctx context.Context) (*entities.DocumentStats, error)
}
