package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/domain/identity"
	"github.com/peeves/backend/internal/domain/shared"
	"github.com/peeves/backend/internal/infrastructure/persistence"
)

func TestUserRepository_SaveAndFind(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormUserRepository(tdb.DB)
	ctx := context.Background()

	user, err := identity.NewUser("Shopper@Example.com", "correct-horse")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "shopper@example.com", found.Email)
		assert.False(t, found.Admin)
		assert.True(t, found.CheckPassword("correct-horse"))
	})

	t.Run("by email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "shopper@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormUserRepository(tdb.DB)
	ctx := context.Background()

	user, err := identity.NewUser("taken@example.com", "correct-horse")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	exists, err := repo.ExistsByEmail(ctx, "taken@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "free@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormUserRepository(tdb.DB)
	ctx := context.Background()

	first, err := identity.NewUser("dupe@example.com", "correct-horse")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := identity.NewUser("dupe@example.com", "battery-staple")
	require.NoError(t, err)
	assert.Error(t, repo.Save(ctx, second))
}

func TestUserRepository_AdminFlagPersists(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	repo := persistence.NewGormUserRepository(tdb.DB)
	ctx := context.Background()

	user, err := identity.NewUser("admin@example.com", "correct-horse")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	user.SetAdmin(true)
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, found.Admin)
}
