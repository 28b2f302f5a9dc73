package repository

import (
	"context"
	"errors"
	"testing"

	"auctionhouse/repository/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		users := newUserRepositoryWithTx(tx)
		if _, err := users.Create(ctx, 1, "alice", 1000); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The insert never became visible
	user, err := NewUserRepository(testDB.DB).GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestWithTransaction_CommitsRelatedWrites(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		users := newUserRepositoryWithTx(tx)
		inventory := newInventoryRepositoryWithTx(tx)

		if _, err := users.Create(ctx, 1, "alice", 1000); err != nil {
			return err
		}
		return inventory.Deposit(ctx, 1, 10, 5)
	})
	require.NoError(t, err)

	qty, err := NewInventoryRepository(testDB.DB).GetQuantity(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), qty)
}
