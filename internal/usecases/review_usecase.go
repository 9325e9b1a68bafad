package usecases

import (
	"context"

	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/domain/repositories"
)

// ReviewUsecase is the thin review CRUD layer. Its only coupling to the
// onboarding core is the rating recompute it triggers after every mutation.
type ReviewUsecase struct {
	reviewRepo   repositories.ReviewRepository
	merchantRepo repositories.MerchantRepository
	aggregator   *RatingAggregator
}

// NewReviewUsecase creates a new review usecase
func NewReviewUsecase(
	reviewRepo repositories.ReviewRepository,
	merchantRepo repositories.MerchantRepository,
	aggregator *RatingAggregator,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo:   reviewRepo,
		merchantRepo: merchantRepo,
		aggregator:   aggregator,
	}
}

// Create creates a review and triggers a rating recompute
func (u *ReviewUsecase) Create(ctx context.Context, merchantID, reviewerID uuid.UUID, input *entities.ReviewInput) (*entities.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.Validation("rating must be between 1 and 5", []string{"rating"})
	}

	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}

	review := &entities.Review{
		MerchantID: merchantID,
		ReviewerID: reviewerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := u.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	u.aggregator.RecomputeAsync(merchantID)
	return review, nil
}

// Update updates a review and triggers a rating recompute. Only the original
// reviewer, or an admin, may edit a review.
func (u *ReviewUsecase) Update(ctx context.Context, reviewID, actorID uuid.UUID, isAdmin bool, input *entities.ReviewInput) (*entities.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.Validation("rating must be between 1 and 5", []string{"rating"})
	}

	review, err := u.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && review.ReviewerID != actorID {
		return nil, domainerrors.Forbidden("review belongs to another reviewer")
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := u.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	u.aggregator.RecomputeAsync(review.MerchantID)
	return review, nil
}

// Delete soft deletes a review and triggers a rating recompute. Same
// ownership rule as Update.
func (u *ReviewUsecase) Delete(ctx context.Context, reviewID, actorID uuid.UUID, isAdmin bool) error {
	review, err := u.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !isAdmin && review.ReviewerID != actorID {
		return domainerrors.Forbidden("review belongs to another reviewer")
	}

	if err := u.reviewRepo.SoftDelete(ctx, reviewID); err != nil {
		return err
	}

	u.aggregator.RecomputeAsync(review.MerchantID)
	return nil
}

// ListForMerchant lists a merchant's reviews
func (u *ReviewUsecase) ListForMerchant(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.Review, int64, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, 0, err
	}
	return u.reviewRepo.ListForMerchant(ctx, merchantID, limit, offset)
}
