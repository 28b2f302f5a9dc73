package repository

import (
	"context"
	"testing"

	"auctionhouse/models"
	"auctionhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		created, err := repo.Create(ctx, 123456, "testuser", 100000)
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, "testuser", user.Username)
		assert.Equal(t, int64(100000), user.Balance)
	})
}

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user, err := repo.Create(ctx, 123456, "testuser", 100000)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(123456), user.ID)
		assert.Equal(t, int64(100000), user.Balance)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate ID", func(t *testing.T) {
		_, err := repo.Create(ctx, 789012, "first", 100000)
		require.NoError(t, err)

		_, err = repo.Create(ctx, 789012, "second", 100000)
		assert.Error(t, err)
	})
}

func TestUserRepository_Balances(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 1, "alice", 100)
	require.NoError(t, err)

	t.Run("add balance", func(t *testing.T) {
		err := repo.AddBalance(ctx, 1, 50)
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(150), user.Balance)
	})

	t.Run("deduct balance", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 1, 120)
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(30), user.Balance)
	})

	t.Run("deduct more than balance", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 1, 1000)
		assert.ErrorIs(t, err, models.ErrInsufficientFunds)

		// Balance untouched
		user, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(30), user.Balance)
	})

	t.Run("deduct from missing user", func(t *testing.T) {
		err := repo.DeductBalance(ctx, 999999, 10)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("add to missing user", func(t *testing.T) {
		err := repo.AddBalance(ctx, 999999, 10)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}
