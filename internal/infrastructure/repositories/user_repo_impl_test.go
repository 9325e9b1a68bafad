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

func TestUserRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	user := &entities.User{
		Email:        "admin@mail.com",
		Name:         "Ops Admin",
		PasswordHash: "hash",
		Role:         entities.RoleAdmin,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	got, err := repo.GetByEmail(context.Background(), "admin@mail.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, entities.RoleAdmin, got.Role)

	_, err = repo.GetByEmail(context.Background(), "nobody@mail.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepo_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	user := &entities.User{Email: "gone@mail.com", PasswordHash: "hash", Role: entities.RoleMerchant}
	require.NoError(t, repo.Create(context.Background(), user))

	require.NoError(t, repo.SoftDelete(context.Background(), user.ID))
	_, err := repo.GetByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
