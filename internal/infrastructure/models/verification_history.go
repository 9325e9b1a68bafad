package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationHistoryEntry rows are append-only; there is no update path and
// no soft delete column on purpose.
type VerificationHistoryEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"type:varchar(50);not null"`
	PerformedBy uuid.UUID `gorm:"type:uuid"`
	Notes       string    `gorm:"type:text"`
	DocumentIDs string    `gorm:"type:jsonb;default:'[]'"`
	CreatedAt   time.Time
}

func (VerificationHistoryEntry) TableName() string {
	return "verification_history"
}
