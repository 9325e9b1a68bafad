package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/usecases"
)

func newBulkFixture() (*MockMerchantRepository, *MockDocumentRepository, *MockVerificationHistoryRepository, *usecases.BulkUsecase) {
	merchantRepo := new(MockMerchantRepository)
	documentRepo := new(MockDocumentRepository)
	historyRepo := new(MockVerificationHistoryRepository)
	verification := usecases.NewVerificationUsecase(merchantRepo, documentRepo, historyRepo, nil)
	return merchantRepo, documentRepo, historyRepo, usecases.NewBulkUsecase(verification, nil)
}

func TestBulkVerify_MixedOutcomes(t *testing.T) {
	merchantRepo, documentRepo, historyRepo, uc := newBulkFixture()

	// A: verifiable, B: missing documents, C: unknown id
	idA := uuid.New()
	idB := uuid.New()
	idC := uuid.New()

	merchantA := &entities.Merchant{ID: idA, OnboardingStatus: entities.OnboardingDocumentsSubmitted}
	merchantB := &entities.Merchant{ID: idB, OnboardingStatus: entities.OnboardingAccountSetup}

	merchantRepo.On("GetByID", context.Background(), idA).Return(merchantA, nil).Once()
	documentRepo.On("ListActiveForMerchant", context.Background(), idA).Return(completeDocSet(idA), nil).Once()
	merchantRepo.On("Update", context.Background(), merchantA).Return(nil).Once()
	historyRepo.On("Append", context.Background(), mock.AnythingOfType("*entities.VerificationHistoryEntry")).Return(nil).Once()

	merchantRepo.On("GetByID", context.Background(), idB).Return(merchantB, nil).Once()
	documentRepo.On("ListActiveForMerchant", context.Background(), idB).Return([]*entities.Document{}, nil).Once()

	merchantRepo.On("GetByID", context.Background(), idC).Return(nil, domainerrors.ErrNotFound).Once()

	result := uc.BulkVerify(context.Background(), []string{idA.String(), idB.String(), idC.String()}, "batch", uuid.New())

	assert.Equal(t, 1, result.ModifiedCount)
	assert.Equal(t, []usecases.BulkItemResult{
		{MerchantID: idA.String(), Outcome: usecases.BulkOutcomeSucceeded},
		{MerchantID: idB.String(), Outcome: usecases.BulkSkipInvalidTransition},
		{MerchantID: idC.String(), Outcome: usecases.BulkSkipNotFound},
	}, result.Results)

	// B's failure did not prevent A from committing
	assert.True(t, merchantA.Verified)
	assert.False(t, merchantB.Verified)
}

func TestBulkVerify_AlreadyVerifiedIsNoChange(t *testing.T) {
	merchantRepo, _, _, uc := newBulkFixture()

	id := uuid.New()
	merchant := &entities.Merchant{ID: id, Verified: true}
	merchantRepo.On("GetByID", context.Background(), id).Return(merchant, nil).Once()

	result := uc.BulkVerify(context.Background(), []string{id.String()}, "", uuid.New())
	assert.Equal(t, 0, result.ModifiedCount)
	assert.Equal(t, usecases.BulkSkipAlreadyInTargetState, result.Results[0].Outcome)
}

func TestBulkVerify_MalformedIDIsNotFound(t *testing.T) {
	_, _, _, uc := newBulkFixture()

	result := uc.BulkVerify(context.Background(), []string{"not-a-uuid"}, "", uuid.New())
	assert.Equal(t, 0, result.ModifiedCount)
	assert.Equal(t, usecases.BulkSkipNotFound, result.Results[0].Outcome)
}

func TestBulkSetStatus_CountsOnlyChanges(t *testing.T) {
	merchantRepo, _, historyRepo, uc := newBulkFixture()

	idActive := uuid.New()
	idInactive := uuid.New()
	active := &entities.Merchant{ID: idActive, IsActive: true}
	inactive := &entities.Merchant{ID: idInactive, IsActive: false}

	merchantRepo.On("GetByID", context.Background(), idActive).Return(active, nil).Once()
	merchantRepo.On("GetByID", context.Background(), idInactive).Return(inactive, nil).Once()
	merchantRepo.On("Update", context.Background(), inactive).Return(nil).Once()
	historyRepo.On("Append", context.Background(), mock.AnythingOfType("*entities.VerificationHistoryEntry")).Return(nil).Once()

	result := uc.BulkSetStatus(context.Background(), []string{idActive.String(), idInactive.String()}, true, uuid.New())

	assert.Equal(t, 1, result.ModifiedCount)
	assert.Equal(t, usecases.BulkSkipAlreadyInTargetState, result.Results[0].Outcome)
	assert.Equal(t, usecases.BulkOutcomeSucceeded, result.Results[1].Outcome)
	assert.True(t, inactive.IsActive)
}

func TestBulkSetFeatured_ConflictClassified(t *testing.T) {
	merchantRepo, _, _, uc := newBulkFixture()

	id := uuid.New()
	merchant := &entities.Merchant{ID: id}
	merchantRepo.On("GetByID", context.Background(), id).Return(merchant, nil).Once()
	merchantRepo.On("Update", context.Background(), merchant).Return(domainerrors.Conflict("stale revision")).Once()

	result := uc.BulkSetFeatured(context.Background(), []string{id.String()}, true, uuid.New())
	assert.Equal(t, 0, result.ModifiedCount)
	assert.Equal(t, usecases.BulkSkipConflict, result.Results[0].Outcome)
}
