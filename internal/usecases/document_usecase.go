package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/domain/repositories"
	"vendor-hub.backend/internal/infrastructure/metrics"
	"vendor-hub.backend/internal/infrastructure/objectstore"
)

// MaxAdditionalDocumentsPerUpload caps the additional documents accepted in a
// single upload request.
const MaxAdditionalDocumentsPerUpload = 5

// DocumentUpload describes one file in an upload request
type DocumentUpload struct {
	Type             entities.DocumentType
	OriginalFilename string
	MimeType         string
	Size             int64
	Content          io.Reader
}

// DocumentUploadSummary reports the outcome of one uploaded document
type DocumentUploadSummary struct {
	DocumentID uuid.UUID             `json:"documentId"`
	Type       entities.DocumentType `json:"type"`
	Filename   string                `json:"filename"`
	Superseded bool                  `json:"superseded"`
}

// DocumentSubmitResult is the aggregate outcome of an upload request
type DocumentSubmitResult struct {
	Documents             []DocumentUploadSummary `json:"documents"`
	ProfileCompleteness   int                     `json:"profileCompleteness"`
	DocumentsCompleteness int                     `json:"documentsCompleteness"`
	OnboardingStatus      entities.OnboardingStatus `json:"onboardingStatus"`
}

// DocumentUsecase owns verification document metadata. Bytes live in the
// object store collaborator; this layer persists metadata and review state and
// drives completeness recomputes on the owning merchant.
type DocumentUsecase struct {
	merchantRepo repositories.MerchantRepository
	documentRepo repositories.DocumentRepository
	historyRepo  repositories.VerificationHistoryRepository
	store        objectstore.ObjectStore
	verification *VerificationUsecase
	metrics      *metrics.OnboardingMetrics
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(
	merchantRepo repositories.MerchantRepository,
	documentRepo repositories.DocumentRepository,
	historyRepo repositories.VerificationHistoryRepository,
	store objectstore.ObjectStore,
	verification *VerificationUsecase,
	m *metrics.OnboardingMetrics,
) *DocumentUsecase {
	return &DocumentUsecase{
		merchantRepo: merchantRepo,
		documentRepo: documentRepo,
		historyRepo:  historyRepo,
		store:        store,
		verification: verification,
		metrics:      m,
	}
}

// Submit stores a batch of uploaded documents for a merchant. Re-submitting a
// required type supersedes the prior active record rather than duplicating it.
// After the batch lands, completeness is recomputed and the state machine
// evaluates the documents_submitted transition.
func (u *DocumentUsecase) Submit(ctx context.Context, merchantID uuid.UUID, uploads []DocumentUpload) (*DocumentSubmitResult, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if len(uploads) == 0 {
		return nil, domainerrors.BadRequest("no documents supplied")
	}

	additional := 0
	for _, up := range uploads {
		if !up.Type.IsValid() {
			return nil, domainerrors.BadRequest(fmt.Sprintf("unknown document type: %s", up.Type))
		}
		if up.Type == entities.DocumentTypeAdditional {
			additional++
		}
	}
	if additional > MaxAdditionalDocumentsPerUpload {
		return nil, domainerrors.BadRequest(fmt.Sprintf("at most %d additional documents per upload", MaxAdditionalDocumentsPerUpload))
	}

	summaries := make([]DocumentUploadSummary, 0, len(uploads))
	for _, up := range uploads {
		key := fmt.Sprintf("merchants/%s/%s/%d_%s", merchantID, up.Type, time.Now().UnixNano(), up.OriginalFilename)
		locator, err := u.store.Put(ctx, key, up.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store document: %w", err)
		}

		superseded := false
		if up.Type.IsRequired() {
			prior, err := u.documentRepo.GetActiveByType(ctx, merchantID, up.Type)
			if err != nil && err != domainerrors.ErrNotFound {
				return nil, err
			}
			if prior != nil {
				if err := u.documentRepo.Deactivate(ctx, prior.ID); err != nil {
					return nil, err
				}
				superseded = true
			}
		}

		doc := &entities.Document{
			MerchantID:       merchantID,
			Type:             up.Type,
			StorageLocator:   locator,
			OriginalFilename: up.OriginalFilename,
			Size:             up.Size,
			MimeType:         up.MimeType,
			Status:           entities.DocumentStatusPending,
			Active:           true,
		}
		if err := u.documentRepo.Create(ctx, doc); err != nil {
			return nil, err
		}

		if u.metrics != nil {
			u.metrics.DocumentsSubmittedTotal.WithLabelValues(string(up.Type)).Inc()
		}

		summaries = append(summaries, DocumentUploadSummary{
			DocumentID: doc.ID,
			Type:       doc.Type,
			Filename:   doc.OriginalFilename,
			Superseded: superseded,
		})
	}

	docs, err := u.documentRepo.ListActiveForMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if _, err := u.verification.EvaluateDocumentTransition(ctx, merchant, docs, merchantID); err != nil {
		return nil, err
	}
	merchant.ProfileCompleteness = CalculateProfileCompleteness(merchant)

	if err := u.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}

	return &DocumentSubmitResult{
		Documents:             summaries,
		ProfileCompleteness:   merchant.ProfileCompleteness,
		DocumentsCompleteness: merchant.DocumentsCompleteness,
		OnboardingStatus:      merchant.OnboardingStatus,
	}, nil
}

// Review records an admin decision on one document. It never flips the
// merchant verified flag; that is a separate explicit action consuming the
// reviewed state.
func (u *DocumentUsecase) Review(ctx context.Context, documentID, reviewerID uuid.UUID, status entities.DocumentStatus, notes string) (*entities.Document, error) {
	if status != entities.DocumentStatusApproved && status != entities.DocumentStatusRejected {
		return nil, domainerrors.BadRequest("review status must be approved or rejected")
	}

	doc, err := u.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	doc.Status = status
	doc.Notes = notes
	doc.ReviewedBy.SetValid(reviewerID.String())
	doc.ReviewedAt.SetValid(time.Now())

	if err := u.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	entry := &entities.VerificationHistoryEntry{
		MerchantID:  doc.MerchantID,
		Action:      entities.HistoryActionDocumentReviewed,
		PerformedBy: reviewerID,
		Notes:       fmt.Sprintf("%s: %s", doc.Type, status),
		DocumentIDs: []uuid.UUID{doc.ID},
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if u.metrics != nil {
		u.metrics.DocumentReviewsTotal.WithLabelValues(string(status)).Inc()
	}

	if err := u.markUnderReview(ctx, doc.MerchantID, reviewerID); err != nil {
		return nil, err
	}

	return doc, nil
}

// markUnderReview advances a merchant from documents_submitted to under_review
// the first time an admin records a review decision for one of its documents.
// Later decisions find the merchant already past documents_submitted and leave
// the status alone.
func (u *DocumentUsecase) markUnderReview(ctx context.Context, merchantID, reviewerID uuid.UUID) error {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return err
	}
	if merchant.OnboardingStatus != entities.OnboardingDocumentsSubmitted {
		return nil
	}

	merchant.OnboardingStatus = entities.OnboardingUnderReview
	if err := u.merchantRepo.Update(ctx, merchant); err != nil {
		return err
	}

	entry := &entities.VerificationHistoryEntry{
		MerchantID:  merchantID,
		Action:      entities.HistoryActionReviewStarted,
		PerformedBy: reviewerID,
	}
	if err := u.historyRepo.Append(ctx, entry); err != nil {
		return err
	}

	if u.metrics != nil {
		u.metrics.OnboardingTransitions.WithLabelValues(string(entities.OnboardingUnderReview)).Inc()
	}
	return nil
}

// ListForMerchant returns all document metadata for a merchant
func (u *DocumentUsecase) ListForMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.Document, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	return u.documentRepo.ListForMerchant(ctx, merchantID)
}

// View returns the active document of the given type plus a reader over its
// bytes resolved from the object store
func (u *DocumentUsecase) View(ctx context.Context, merchantID uuid.UUID, docType entities.DocumentType) (*entities.Document, io.ReadCloser, error) {
	if !docType.IsValid() {
		return nil, nil, domainerrors.BadRequest(fmt.Sprintf("unknown document type: %s", docType))
	}

	doc, err := u.documentRepo.GetActiveByType(ctx, merchantID, docType)
	if err != nil {
		return nil, nil, err
	}

	r, err := u.store.Open(ctx, doc.StorageLocator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open document: %w", err)
	}
	return doc, r, nil
}

// GetStats aggregates document counts by status and type across all merchants
func (u *DocumentUsecase) GetStats(ctx context.Context) (*entities.DocumentStats, error) {
	return u.documentRepo.GetStats(ctx)
}
