package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
)

// MerchantListFilter narrows merchant listings
type MerchantListFilter struct {
	Status   entities.OnboardingStatus
	Verified *bool
	IsActive *bool
	Featured *bool
	Search   string
	Limit    int
	Offset   int
}

// MerchantRepository defines merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*entities.Merchant, error)
	GetBySetupToken(ctx context.Context, token string) (*entities.Merchant, error)
	// Update persists the merchant if its revision still matches the loaded
	// one, increments the revision, and returns ErrConflict otherwise.
	Update(ctx context.Context, merchant *entities.Merchant) error
	List(ctx context.Context, filter MerchantListFilter) ([]*entities.Merchant, int64, error)
	// UpdateRating writes only the aggregate rating fields, bypassing the
	// revision check so a recompute can never conflict with a profile write.
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, reviewCount int) error
	ClearExpiredSetupTokens(ctx context.Context, limit int) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// VerificationHistoryRepository defines the append-only audit log operations.
// There is intentionally no update or delete.
type VerificationHistoryRepository interface {
	Append(ctx context.Context, entry *entities.VerificationHistoryEntry) error
	ListForMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationHistoryEntry, error)
}
