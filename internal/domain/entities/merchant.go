package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OnboardingStatus represents the coarse lifecycle stage of a merchant account
type OnboardingStatus string

const (
	OnboardingCredentialsSent    OnboardingStatus = "credentials_sent"
	OnboardingAccountSetup       OnboardingStatus = "account_setup"
	OnboardingDocumentsSubmitted OnboardingStatus = "documents_submitted"
	OnboardingUnderReview        OnboardingStatus = "under_review"
	OnboardingCompleted          OnboardingStatus = "completed"
)

// BusinessType represents merchant business types
type BusinessType string

const (
	BusinessTypeRetail       BusinessType = "retail"
	BusinessTypeWholesale    BusinessType = "wholesale"
	BusinessTypeService      BusinessType = "service"
	BusinessTypeManufacturer BusinessType = "manufacturer"
)

// Merchant represents a marketplace merchant account
type Merchant struct {
	ID              uuid.UUID    `json:"id"`
	BusinessName    string       `json:"businessName"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	BusinessType    BusinessType `json:"businessType"`
	Description     string       `json:"description"`
	Address         string       `json:"address"`
	Location        string       `json:"location"`
	Website         null.String  `json:"website,omitempty"`
	YearEstablished null.Int64   `json:"yearEstablished,omitempty"`
	LogoLocator     null.String  `json:"logo,omitempty"`
	BusinessHours   null.String  `json:"businessHours,omitempty"`

	OnboardingStatus      OnboardingStatus `json:"onboardingStatus"`
	ProfileCompleteness   int              `json:"profileCompleteness"`
	DocumentsCompleteness int              `json:"documentsCompleteness"`

	Verified   bool      `json:"verified"`
	IsActive   bool      `json:"isActive"`
	Featured   bool      `json:"featured"`
	FeaturedAt null.Time `json:"featuredAt,omitempty"`

	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`

	PasswordHash         string    `json:"-"`
	SetupToken           string    `json:"-"`
	SetupTokenExpiresAt  null.Time `json:"-"`
	AccountSetupAt       null.Time `json:"accountSetupAt,omitempty"`
	DocumentsSubmittedAt null.Time `json:"documentsSubmittedAt,omitempty"`
	VerifiedAt           null.Time `json:"verifiedAt,omitempty"`

	// Revision is an optimistic concurrency counter, incremented on every
	// persisted update. A stale revision on write yields ErrConflict.
	Revision int `json:"revision"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt null.Time `json:"-"`
}

// MerchantProfileInput carries the profile fields an admin or merchant may set
type MerchantProfileInput struct {
	BusinessName    string       `json:"businessName"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	BusinessType    BusinessType `json:"businessType"`
	Description     string       `json:"description"`
	Address         string       `json:"address"`
	Location        string       `json:"location"`
	Website         string       `json:"website,omitempty"`
	YearEstablished int          `json:"yearEstablished,omitempty"`
	LogoLocator     string       `json:"logo,omitempty"`
	BusinessHours   string       `json:"businessHours,omitempty"`
}

// VerificationHistoryEntry is an append-only audit line on a merchant account.
// Entries are never mutated or deleted.
type VerificationHistoryEntry struct {
	ID          uuid.UUID   `json:"id"`
	MerchantID  uuid.UUID   `json:"merchantId"`
	Action      string      `json:"action"`
	PerformedBy uuid.UUID   `json:"performedBy"`
	Notes       string      `json:"notes,omitempty"`
	DocumentIDs []uuid.UUID `json:"documentIds,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// History actions
const (
	HistoryActionCredentialsSent    = "credentials_sent"
	HistoryActionAccountSetup       = "account_setup_completed"
	HistoryActionDocumentsSubmitted = "documents_submitted"
	HistoryActionVerified           = "verified"
	HistoryActionAutoVerified       = "auto_verified"
	HistoryActionActivated          = "activated"
	HistoryActionDeactivated        = "deactivated"
	HistoryActionFeatured           = "featured"
	HistoryActionUnfeatured         = "unfeatured"
	HistoryActionDocumentReviewed   = "document_reviewed"
	HistoryActionReviewStarted      = "review_started"
)
