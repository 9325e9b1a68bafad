package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID       uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_merchant_type"`
	Type             string    `gorm:"type:varchar(50);not null;index:idx_documents_merchant_type"`
	StorageLocator   string    `gorm:"type:text;not null"`
	OriginalFilename string    `gorm:"type:varchar(255)"`
	Size             int64     `gorm:"not null;default:0"`
	MimeType         string    `gorm:"type:varchar(100)"`
	Status           string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReviewedBy       string    `gorm:"type:varchar(36)"`
	ReviewedAt       *time.Time
	Notes            string `gorm:"type:text"`
	Active           bool   `gorm:"not null;default:true;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
