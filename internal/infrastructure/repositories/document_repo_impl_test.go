package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
)

func seedDocument(t *testing.T, repo *DocumentRepository, merchantID uuid.UUID, docType entities.DocumentType) *entities.Document {
	t.Helper()
	doc := &entities.Document{
		MerchantID:       merchantID,
		Type:             docType,
		StorageLocator:   "local://docs/" + string(docType),
		OriginalFilename: string(docType) + ".pdf",
		Size:             2048,
		MimeType:         "application/pdf",
		Status:           entities.DocumentStatusPending,
		Active:           true,
	}
	require.NoError(t, repo.Create(context.Background(), doc))
	return doc
}

func TestDocumentRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createDocumentTable(t, db)
	repo := NewDocumentRepository(db)

	merchantID := uuid.New()
	doc := seedDocument(t, repo, merchantID, entities.DocumentTypeBusinessRegistration)

	got, err := repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, merchantID, got.MerchantID)
	assert.Equal(t, entities.DocumentStatusPending, got.Status)
	assert.True(t, got.Active)
}

func TestDocumentRepo_GetActiveByType_SkipsSuperseded(t *testing.T) {
	db := newTestDB(t)
	createDocumentTable(t, db)
	repo := NewDocumentRepository(db)

	merchantID := uuid.New()
	old := seedDocument(t, repo, merchantID, entities.DocumentTypeIDDocument)
	require.NoError(t, repo.Deactivate(context.Background(), old.ID))
	replacement := seedDocument(t, repo, merchantID, entities.DocumentTypeIDDocument)

	got, err := repo.GetActiveByType(context.Background(), merchantID, entities.DocumentTypeIDDocument)
	require.NoError(t, err)
	assert.Equal(t, replacement.ID, got.ID)

	// The old record survives, inactive
	all, err := repo.ListForMerchant(context.Background(), merchantID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.ListActiveForMerchant(context.Background(), merchantID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, replacement.ID, active[0].ID)
}

func TestDocumentRepo_GetActiveByType_NotFound(t *testing.T) {
	db := newTestDB(t)
	createDocumentTable(t, db)
	repo := NewDocumentRepository(db)

	_, err := repo.GetActiveByType(context.Background(), uuid.New(), entities.DocumentTypeUtilityBill)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDocumentRepo_UpdateReviewFields(t *testing.T) {
	db := newTestDB(t)
	createDocumentTable(t, db)
	repo := NewDocumentRepository(db)

	doc := seedDocument(t, repo, uuid.New(), entities.DocumentTypeUtilityBill)
	reviewer := uuid.New()

	doc.Status = entities.DocumentStatusApproved
	doc.Notes = "legible"
	doc.ReviewedBy.SetValid(reviewer.String())
	require.NoError(t, repo.Update(context.Background(), doc))

	got, err := repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DocumentStatusApproved, got.Status)
	assert.Equal(t, "legible", got.Notes)
	assert.Equal(t, reviewer.String(), got.ReviewedBy.String)
}

func TestDocumentRepo_SetStatusForMerchant_ActiveOnly(t *testing.T) {
	db := newTestDB(t)
	createDocumentTable(t, db)
	repo := NewDocumentRepository(db)

	merchantID := uuid.New()
	superseded := seedDocument(t, repo, merchantID, entities.DocumentTypeBusinessRegistration)
	require.NoError(t, repo.Deactivate(context.Background(), superseded.ID))
	current := seedDocument(t, repo, merchantID, entities.DocumentTypeBusinessRegistration)

	require.NoError(t, repo.SetStatusForMerchant(context.Background(), merchantID, entities.DocumentStatusApproved))

	got, err := repo.GetByID(context.Background(), current.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DocumentStatusApproved, got.Status)

	got, err = repo.GetByID(context.Background(), superseded.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.DocumentStatusPending, got.Status)
}

func TestDocumentRepo_GetStats(t *testing.T) {
	db := newTestDB(t)
	createDocumentTable(t, db)
	repo := NewDocumentRepository(db)

	merchantA := uuid.New()
	merchantB := uuid.New()

	seedDocument(t, repo, merchantA, entities.DocumentTypeBusinessRegistration)
	seedDocument(t, repo, merchantA, entities.DocumentTypeIDDocument)
	approved := seedDocument(t, repo, merchantB, entities.DocumentTypeBusinessRegistration)
	approved.Status = entities.DocumentStatusApproved
	require.NoError(t, repo.Update(context.Background(), approved))

	// Superseded records do not count
	old := seedDocument(t, repo, merchantB, entities.DocumentTypeUtilityBill)
	require.NoError(t, repo.Deactivate(context.Background(), old.ID))

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[entities.DocumentStatusPending])
	assert.Equal(t, int64(1), stats.ByStatus[entities.DocumentStatusApproved])
	assert.Equal(t, int64(2), stats.ByType[entities.DocumentTypeBusinessRegistration])
	assert.Equal(t, int64(1), stats.ByType[entities.DocumentTypeIDDocument])
}
