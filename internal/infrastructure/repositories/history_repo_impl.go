package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"vendor-hub.backend/internal/domain/entities"
	"vendor-hub.backend/internal/infrastructure/models"
)

// VerificationHistoryRepository implements the append-only audit log
type VerificationHistoryRepository struct {
	db *gorm.DB
}

// NewVerificationHistoryRepository creates a new verification history repository
func NewVerificationHistoryRepository(db *gorm.DB) *VerificationHistoryRepository {
	return &VerificationHistoryRepository{db: db}
}

// Append writes one immutable history entry
func (r *VerificationHistoryRepository) Append(ctx context.Context, entry *entities.VerificationHistoryEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	docIDs, err := json.Marshal(entry.DocumentIDs)
	if err != nil {
		return err
	}

	m := &models.VerificationHistoryEntry{
		ID:          entry.ID,
		MerchantID:  entry.MerchantID,
		Action:      entry.Action,
		PerformedBy: entry.PerformedBy,
		Notes:       entry.Notes,
		DocumentIDs: string(docIDs),
		CreatedAt:   entry.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// ListForMerchant returns a merchant's audit trail, oldest first
func (r *VerificationHistoryRepository) ListForMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationHistoryEntry, error) {
	var entryModels []models.VerificationHistoryEntry
	err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at ASC").
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*entities.VerificationHistoryEntry, 0, len(entryModels))
	for _, m := range entryModels {
		entry := &entities.VerificationHistoryEntry{
			ID:          m.ID,
			MerchantID:  m.MerchantID,
			Action:      m.Action,
			PerformedBy: m.PerformedBy,
			Notes:       m.Notes,
			CreatedAt:   m.CreatedAt,
		}
		if m.DocumentIDs != "" && m.DocumentIDs != "[]" {
			var ids []uuid.UUID
			if err := json.Unmarshal([]byte(m.DocumentIDs), &ids); err == nil {
				entry.DocumentIDs = ids
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
