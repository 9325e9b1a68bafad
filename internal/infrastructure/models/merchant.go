package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Merchant struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BusinessName    string    `gorm:"type:varchar(255);not null"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone           string    `gorm:"type:varchar(50)"`
	BusinessType    string    `gorm:"type:varchar(50)"`
	Description     string    `gorm:"type:text"`
	Address         string    `gorm:"type:text"`
	Location        string    `gorm:"type:varchar(255)"`
	Website         string    `gorm:"type:varchar(255)"`
	YearEstablished int64     `gorm:"default:0"`
	LogoLocator     string    `gorm:"type:text"`
	BusinessHours   string    `gorm:"type:text"`

	OnboardingStatus      string `gorm:"type:varchar(50);not null;default:'credentials_sent';index"`
	ProfileCompleteness   int    `gorm:"not null;default:0"`
	DocumentsCompleteness int    `gorm:"not null;default:0"`

	Verified   bool `gorm:"not null;default:false;index"`
	IsActive   bool `gorm:"not null;default:true;index"`
	Featured   bool `gorm:"not null;default:false"`
	FeaturedAt *time.Time

	Rating      float64 `gorm:"type:decimal(2,1);not null;default:0"`
	ReviewCount int     `gorm:"not null;default:0"`

	PasswordHash         string `gorm:"type:varchar(255)"`
	SetupToken           string `gorm:"type:varchar(255);index"`
	SetupTokenExpiresAt  *time.Time
	AccountSetupAt       *time.Time
	DocumentsSubmittedAt *time.Time
	VerifiedAt           *time.Time

	Revision int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
