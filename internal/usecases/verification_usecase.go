package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/domain/repositories"
	"vendor-hub.backend/internal/infrastructure/metrics"
)

// VerificationUsecase owns the merchant onboarding state machine. It is the
// only writer of onboarding status, the verified flag and the orthogonal
// active/featured flags.
type VerificationUsecase struct {
	merchantRepo repositories.MerchantRepository
	documentRepo repositories.DocumentRepository
	historyRepo  repositories.VerificationHistoryRepository
	metrics      *metrics.OnboardingMetrics
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	merchantRepo repositories.MerchantRepository,
	documentRepo repositories.DocumentRepository,
	historyRepo repositories.VerificationHistoryRepository,
	m *metrics.OnboardingMetrics,
) *VerificationUsecase {
	return &VerificationUsecase{
		merchantRepo: merchantRepo,
		documentRepo: documentRepo,
		historyRepo:  historyRepo,
		metrics:      m,
	}
}

// Verify performs the admin verification action. It requires all three
// required documents present and none rejected. Verifying an already verified
// merchant is an idempotent no-op returning the current state; the returned
// bool reports whether anything changed.
func (u *VerificationUsecase) Verify(ctx context.Context, merchantID, actorID uuid.UUID, notes string) (*entities.Merchant, bool, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, false, err
	}

	if merchant.Verified {
		return merchant, false, nil
	}

	docs, err := u.documentRepo.ListActiveForMerchant(ctx, merchantID)
	if err != nil {
		return nil, false, err
	}

	if missing := MissingRequiredDocuments(docs); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, t := range missing {
			names = append(names, string(t))
		}
		return nil, false, domainerrors.InvalidTransition("cannot verify merchant: required documents missing", names)
	}

	var docIDs []uuid.UUID
	for _, d := range docs {
		if d.Type.IsRequired() && d.Status == entities.DocumentStatusRejected {
			return nil, false, domainerrors.InvalidTransition("cannot verify merchant: required document rejected", []string{string(d.Type)})
		}
		if d.Type.IsRequired() {
			docIDs = append(docIDs, d.ID)
		}
	}

	now := time.Now()
	merchant.Verified = true
	merchant.VerifiedAt.SetValid(now)
	merchant.OnboardingStatus = entities.OnboardingCompleted
	merchant.DocumentsCompleteness = CalculateDocumentsCompleteness(docs)

	if err := u.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, false, err
	}

	entry := &entities.VerificationHistoryEntry{
		MerchantID:  merchant.ID,
		Action:      entities.HistoryActionVerified,
		PerformedBy: actorID,
		Notes:       notes,
		DocumentIDs: docIDs,
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return nil, false, err
	}

	if u.metrics != nil {
		u.metrics.VerificationsTotal.WithLabelValues("admin").Inc()
		u.metrics.OnboardingTransitions.WithLabelValues(string(entities.OnboardingCompleted)).Inc()
		u.metrics.VerificationDuration.Observe(now.Sub(merchant.CreatedAt).Seconds())
	}

	return merchant, true, nil
}

// EvaluateDocumentTransition recomputes document completeness on the given
// merchant and advances account_setup to documents_submitted when completeness
// reaches 100. The status guard makes the transition fire exactly once even if
// a complete set is re-submitted. The merchant is mutated but not persisted;
// the caller commits the write. Returns whether a transition occurred.
func (u *VerificationUsecase) EvaluateDocumentTransition(ctx context.Context, merchant *entities.Merchant, docs []*entities.Document, actorID uuid.UUID) (bool, error) {
	merchant.DocumentsCompleteness = CalculateDocumentsCompleteness(docs)

	if merchant.DocumentsCompleteness < 100 || merchant.OnboardingStatus != entities.OnboardingAccountSetup {
		return false, nil
	}

	merchant.OnboardingStatus = entities.OnboardingDocumentsSubmitted
	merchant.DocumentsSubmittedAt.SetValid(time.Now())

	if err := u.documentRepo.SetStatusForMerchant(ctx, merchant.ID, entities.DocumentStatusPending); err != nil {
		return false, err
	}

	var docIDs []uuid.UUID
	for _, d := range docs {
		if d.Type.IsRequired() {
			docIDs = append(docIDs, d.ID)
		}
	}

	entry := &entities.VerificationHistoryEntry{
		MerchantID:  merchant.ID,
		Action:      entities.HistoryActionDocumentsSubmitted,
		PerformedBy: actorID,
		DocumentIDs: docIDs,
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return false, err
	}

	if u.metrics != nil {
		u.metrics.OnboardingTransitions.WithLabelValues(string(entities.OnboardingDocumentsSubmitted)).Inc()
	}

	return true, nil
}

// SetActive toggles merchant activation independent of onboarding status.
// Deactivation is the soft-delete path for merchants referencing orders or
// reviews. Returns whether anything changed.
func (u *VerificationUsecase) SetActive(ctx context.Context, merchantID, actorID uuid.UUID, active bool) (*entities.Merchant, bool, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, false, err
	}

	if merchant.IsActive == active {
		return merchant, false, nil
	}

	merchant.IsActive = active
	if err := u.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, false, err
	}

	action := entities.HistoryActionActivated
	if !active {
		action = entities.HistoryActionDeactivated
	}
	entry := &entities.VerificationHistoryEntry{
		MerchantID:  merchant.ID,
		Action:      action,
		PerformedBy: actorID,
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return nil, false, err
	}

	return merchant, true, nil
}

// SetFeatured toggles the featured flag independent of onboarding status.
// Returns whether anything changed.
func (u *VerificationUsecase) SetFeatured(ctx context.Context, merchantID, actorID uuid.UUID, featured bool) (*entities.Merchant, bool, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, false, err
	}

	if merchant.Featured == featured {
		return merchant, false, nil
	}

	merchant.Featured = featured
	if featured {
		merchant.FeaturedAt.SetValid(time.Now())
	} else {
		merchant.FeaturedAt.Valid = false
	}
	if err := u.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, false, err
	}

	action := entities.HistoryActionFeatured
	if !featured {
		action = entities.HistoryActionUnfeatured
	}
	entry := &entities.VerificationHistoryEntry{
		MerchantID:  merchant.ID,
		Action:      action,
		PerformedBy: actorID,
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return nil, false, err
	}

	return merchant, true, nil
}

// History returns a merchant's append-only audit trail
func (u *VerificationUsecase) History(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationHistoryEntry, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	return u.historyRepo.ListForMerchant(ctx, merchantID)
}
