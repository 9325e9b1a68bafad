package repositories

import (
	"context"

	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
)

// ReviewRepository defines review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Review, error)
	Update(ctx context.Context, review *entities.Review) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListForMerchant(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.Review, int64, error)
	// Aggregate returns avg(rating) and count(*) over live reviews for a
	// merchant. Zero reviews yields (0, 0), not an error.
	Aggregate(ctx context.Context, merchantID uuid.UUID) (float64, int, error)
}
