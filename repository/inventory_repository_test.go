package repository

import (
	"context"
	"testing"

	"auctionhouse/models"
	"auctionhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRepository_DepositAndWithdraw(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewInventoryRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "alice", 100000)
	require.NoError(t, err)

	t.Run("quantity is zero when no entry exists", func(t *testing.T) {
		qty, err := repo.GetQuantity(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), qty)
	})

	t.Run("deposit creates the entry", func(t *testing.T) {
		err := repo.Deposit(ctx, 1, 10, 5)
		require.NoError(t, err)

		qty, err := repo.GetQuantity(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(5), qty)
	})

	t.Run("deposit merges into the existing entry", func(t *testing.T) {
		err := repo.Deposit(ctx, 1, 10, 3)
		require.NoError(t, err)

		qty, err := repo.GetQuantity(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(8), qty)
	})

	t.Run("partial withdraw", func(t *testing.T) {
		err := repo.Withdraw(ctx, 1, 10, 6)
		require.NoError(t, err)

		qty, err := repo.GetQuantity(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), qty)
	})

	t.Run("withdraw more than held", func(t *testing.T) {
		err := repo.Withdraw(ctx, 1, 10, 3)
		assert.ErrorIs(t, err, models.ErrInsufficientQuantity)

		qty, err := repo.GetQuantity(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), qty)
	})

	t.Run("withdraw to zero removes the entry", func(t *testing.T) {
		err := repo.Withdraw(ctx, 1, 10, 2)
		require.NoError(t, err)

		qty, err := repo.GetQuantity(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), qty)

		entries, err := repo.GetByUser(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("withdraw from missing entry", func(t *testing.T) {
		err := repo.Withdraw(ctx, 1, 999, 1)
		assert.ErrorIs(t, err, models.ErrInsufficientQuantity)
	})
}

func TestInventoryRepository_GetByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewInventoryRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "alice", 100000)
	require.NoError(t, err)

	require.NoError(t, repo.Deposit(ctx, 1, 20, 2))
	require.NoError(t, repo.Deposit(ctx, 1, 10, 5))

	entries, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Ordered by item ID
	assert.Equal(t, int64(10), entries[0].ItemID)
	assert.Equal(t, int64(5), entries[0].Quantity)
	assert.Equal(t, int64(20), entries[1].ItemID)
	assert.Equal(t, int64(2), entries[1].Quantity)
}
