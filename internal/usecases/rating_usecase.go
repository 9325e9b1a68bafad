package usecases

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"vendor-hub.backend/internal/domain/repositories"
	"vendor-hub.backend/internal/infrastructure/metrics"
	"vendor-hub.backend/pkg/logger"
)

// RatingAggregator recomputes a merchant's aggregate rating whenever a review
// referencing it is created, updated or removed. A recompute failure must
// never abort the review write that triggered it, so errors are logged and
// swallowed.
type RatingAggregator struct {
	reviewRepo   repositories.ReviewRepository
	merchantRepo repositories.MerchantRepository
	metrics      *metrics.OnboardingMetrics
}

// NewRatingAggregator creates a new rating aggregator
func NewRatingAggregator(
	reviewRepo repositories.ReviewRepository,
	merchantRepo repositories.MerchantRepository,
	m *metrics.OnboardingMetrics,
) *RatingAggregator {
	return &RatingAggregator{
		reviewRepo:   reviewRepo,
		merchantRepo: merchantRepo,
		metrics:      m,
	}
}

// Recompute recalculates avg(rating) rounded to one decimal and count(*) over
// all live reviews and writes both onto the merchant record. It runs
// unconditionally: zero reviews resets the average to 0. Safe to re-run.
func (u *RatingAggregator) Recompute(ctx context.Context, merchantID uuid.UUID) error {
	avg, count, err := u.reviewRepo.Aggregate(ctx, merchantID)
	if err != nil {
		return err
	}

	rating := math.Round(avg*10) / 10
	if count == 0 {
		rating = 0
	}

	return u.merchantRepo.UpdateRating(ctx, merchantID, rating, count)
}

// RecomputeAsync runs Recompute fire-and-forget on a detached context. This is
// the trigger path used after review mutations; best effort, not
// guaranteed-exactly-once.
func (u *RatingAggregator) RecomputeAsync(merchantID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := u.Recompute(ctx, merchantID); err != nil {
			if u.metrics != nil {
				u.metrics.RatingRecomputesTotal.WithLabelValues("error").Inc()
			}
			logger.Error(ctx, "Rating recompute failed",
				zap.String("merchant_id", merchantID.String()),
				zap.Error(err),
			)
			return
		}
		if u.metrics != nil {
			u.metrics.RatingRecomputesTotal.WithLabelValues("ok").Inc()
		}
	}()
}
