package repository

import (
	"context"
	"testing"

	"auctionhouse/models"
	"auctionhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "alice", 100000)
	require.NoError(t, err)

	history := testutil.CreateTestBalanceHistory(1, models.TransactionTypeDebit)
	err = repo.Record(ctx, history)
	require.NoError(t, err)
	assert.NotZero(t, history.ID)
	assert.False(t, history.CreatedAt.IsZero())

	entries, err := repo.GetByUser(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, int64(-10000), got.ChangeAmount)
	assert.Equal(t, models.TransactionTypeDebit, got.TransactionType)
	assert.Equal(t, true, got.TransactionMetadata["test"])
}

func TestBalanceHistoryRepository_GetByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "alice", 100000)
	require.NoError(t, err)
	_, err = users.Create(ctx, 2, "bob", 100000)
	require.NoError(t, err)

	for _, txType := range []models.TransactionType{
		models.TransactionTypeInitial,
		models.TransactionTypeCredit,
		models.TransactionTypeDebit,
	} {
		require.NoError(t, repo.Record(ctx, testutil.CreateTestBalanceHistory(1, txType)))
	}

	t.Run("respects limit", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, 1, 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("returns all within limit", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, 1, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("scoped to the user", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, 2, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
