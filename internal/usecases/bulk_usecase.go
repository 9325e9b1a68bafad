package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/infrastructure/metrics"
)

// Bulk per-item outcomes
const (
	BulkOutcomeSucceeded         = "succeeded"
	BulkSkipNotFound             = "skipped:NotFound"
	BulkSkipInvalidTransition    = "skipped:InvalidTransition"
	BulkSkipConflict             = "skipped:Conflict"
	BulkSkipAlreadyInTargetState = "skipped:NoChange"
	BulkSkipError                = "skipped:Error"
)

// BulkItemResult reports the outcome for one merchant in a batch
type BulkItemResult struct {
	MerchantID string `json:"merchantId"`
	Outcome    string `json:"outcome"`
}

// BulkResult aggregates a whole batch. The batch is best-effort: one
// merchant's failure never aborts the rest, and nothing is transactional
// across items.
type BulkResult struct {
	Results       []BulkItemResult `json:"results"`
	ModifiedCount int              `json:"modifiedCount"`
}

// BulkUsecase applies verify/feature/activate operations across merchant sets,
// delegating each item to the verification state machine.
type BulkUsecase struct {
	verification *VerificationUsecase
	metrics      *metrics.OnboardingMetrics
}

// NewBulkUsecase creates a new bulk operations usecase
func NewBulkUsecase(verification *VerificationUsecase, m *metrics.OnboardingMetrics) *BulkUsecase {
	return &BulkUsecase{verification: verification, metrics: m}
}

// BulkVerify verifies each merchant independently. Already verified merchants
// count as no-change skips, not errors.
func (u *BulkUsecase) BulkVerify(ctx context.Context, merchantIDs []string, notes string, actorID uuid.UUID) *BulkResult {
	return u.run(ctx, "verify", merchantIDs, func(ctx context.Context, id uuid.UUID) (bool, error) {
		_, changed, err := u.verification.Verify(ctx, id, actorID, notes)
		return changed, err
	})
}

// BulkSetFeatured applies the featured flag to each merchant independently
func (u *BulkUsecase) BulkSetFeatured(ctx context.Context, merchantIDs []string, featured bool, actorID uuid.UUID) *BulkResult {
	return u.run(ctx, "feature", merchantIDs, func(ctx context.Context, id uuid.UUID) (bool, error) {
		_, changed, err := u.verification.SetFeatured(ctx, id, actorID, featured)
		return changed, err
	})
}

// BulkSetStatus applies the active flag to each merchant independently
func (u *BulkUsecase) BulkSetStatus(ctx context.Context, merchantIDs []string, isActive bool, actorID uuid.UUID) *BulkResult {
	return u.run(ctx, "status", merchantIDs, func(ctx context.Context, id uuid.UUID) (bool, error) {
		_, changed, err := u.verification.SetActive(ctx, id, actorID, isActive)
		return changed, err
	})
}

func (u *BulkUsecase) run(ctx context.Context, operation string, merchantIDs []string, apply func(context.Context, uuid.UUID) (bool, error)) *BulkResult {
	result := &BulkResult{Results: make([]BulkItemResult, 0, len(merchantIDs))}

	for _, rawID := range merchantIDs {
		outcome := BulkOutcomeSucceeded

		id, err := uuid.Parse(rawID)
		if err != nil {
			outcome = BulkSkipNotFound
		} else {
			changed, err := apply(ctx, id)
			switch {
			case err == nil && changed:
				result.ModifiedCount++
			case err == nil:
				outcome = BulkSkipAlreadyInTargetState
			default:
				outcome = classifyBulkError(err)
			}
		}

		if u.metrics != nil {
			u.metrics.BulkOperationItemsTotal.WithLabelValues(operation, outcome).Inc()
		}
		result.Results = append(result.Results, BulkItemResult{MerchantID: rawID, Outcome: outcome})
	}

	return result
}

func classifyBulkError(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return BulkSkipNotFound
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		return BulkSkipInvalidTransition
	case errors.Is(err, domainerrors.ErrConflict):
		return BulkSkipConflict
	default:
		return BulkSkipError
	}
}
