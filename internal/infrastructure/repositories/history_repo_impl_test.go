package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vendor-hub.backend/internal/domain/entities"
)

func TestHistoryRepo_AppendAndList(t *testing.T) {
	db := newTestDB(t)
	createVerificationHistoryTable(t, db)
	repo := NewVerificationHistoryRepository(db)

	merchantID := uuid.New()
	actorID := uuid.New()
	docIDs := []uuid.UUID{uuid.New(), uuid.New()}

	require.NoError(t, repo.Append(context.Background(), &entities.VerificationHistoryEntry{
		MerchantID:  merchantID,
		Action:      entities.HistoryActionCredentialsSent,
		PerformedBy: actorID,
	}))
	require.NoError(t, repo.Append(context.Background(), &entities.VerificationHistoryEntry{
		MerchantID:  merchantID,
		Action:      entities.HistoryActionVerified,
		PerformedBy: actorID,
		Notes:       "all documents in order",
		DocumentIDs: docIDs,
	}))

	entries, err := repo.ListForMerchant(context.Background(), merchantID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Oldest first
	assert.Equal(t, entities.HistoryActionCredentialsSent, entries[0].Action)
	assert.Empty(t, entries[0].DocumentIDs)

	assert.Equal(t, entities.HistoryActionVerified, entries[1].Action)
	assert.Equal(t, "all documents in order", entries[1].Notes)
	assert.Equal(t, docIDs, entries[1].DocumentIDs)
}

func TestHistoryRepo_ListScopedToMerchant(t *testing.T) {
	db := newTestDB(t)
	createVerificationHistoryTable(t, db)
	repo := NewVerificationHistoryRepository(db)

	merchantA := uuid.New()
	merchantB := uuid.New()

	require.NoError(t, repo.Append(context.Background(), &entities.VerificationHistoryEntry{
		MerchantID: merchantA,
		Action:     entities.HistoryActionActivated,
	}))
	require.NoError(t, repo.Append(context.Background(), &entities.VerificationHistoryEntry{
		MerchantID: merchantB,
		Action:     entities.HistoryActionDeactivated,
	}))

	entries, err := repo.ListForMerchant(context.Background(), merchantA)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.HistoryActionActivated, entries[0].Action)
}

func TestHistoryRepo_EmptyTrail(t *testing.T) {
	db := newTestDB(t)
	createVerificationHistoryTable(t, db)
	repo := NewVerificationHistoryRepository(db)

	entries, err := repo.ListForMerchant(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
