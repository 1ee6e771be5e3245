package adminrepo

import (
	"context"
	"testing"

	"familykarting/api/repositories/testutil"
	"familykarting/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewAdminRepository(t *testing.T) {
	repository := NewAdminRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestAdminRepository(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewAdminRepository(db)
	ctx := context.Background()
	testutil.Truncate(t, db)

	admin := &models.Admin{Email: " Pai@Family.pt ", PasswordHash: "first"}
	require.NoError(t, repository.UpsertAdmin(ctx, admin))

	found, err := repository.GetAdminByEmail(ctx, "pai@family.pt")
	require.NoError(t, err)
	assert.Equal(t, "first", found.PasswordHash)

	require.NoError(t, repository.UpsertAdmin(ctx, &models.Admin{Email: "pai@family.pt", PasswordHash: "second"}))

	byID, err := repository.GetAdminByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", byID.PasswordHash)

	_, err = repository.GetAdminByEmail(ctx, "nobody@family.pt")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
