package repository

import (
	"context"
	"testing"

	"auctionhouse/models"
	"auctionhouse/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRepository_Lifecycle(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	auctions := NewAuctionRepository(testDB.DB)
	repo := NewReservationRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "seller", 100000)
	require.NoError(t, err)
	_, err = users.Create(ctx, 2, "bidder", 100000)
	require.NoError(t, err)

	auction := testutil.CreateTestAuction(1, 10)
	require.NoError(t, auctions.Create(ctx, auction))

	t.Run("not found", func(t *testing.T) {
		reservation, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, reservation)
	})

	t.Run("create and retrieve", func(t *testing.T) {
		reservation := testutil.CreateTestReservation(2, auction.ID, 150)
		err := repo.Create(ctx, reservation)
		require.NoError(t, err)
		assert.False(t, reservation.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, reservation.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(2), got.UserID)
		assert.Equal(t, int64(150), got.Amount)
		assert.True(t, got.IsActive())
	})

	t.Run("release happens once", func(t *testing.T) {
		reservation := testutil.CreateTestReservation(2, auction.ID, 150)
		require.NoError(t, repo.Create(ctx, reservation))

		released, err := repo.MarkReleased(ctx, reservation.ID)
		require.NoError(t, err)
		assert.True(t, released)

		released, err = repo.MarkReleased(ctx, reservation.ID)
		require.NoError(t, err)
		assert.False(t, released)

		got, err := repo.GetByID(ctx, reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusReleased, got.Status)
	})

	t.Run("released reservation cannot settle", func(t *testing.T) {
		reservation := testutil.CreateTestReservation(2, auction.ID, 150)
		require.NoError(t, repo.Create(ctx, reservation))

		released, err := repo.MarkReleased(ctx, reservation.ID)
		require.NoError(t, err)
		require.True(t, released)

		settled, err := repo.MarkSettled(ctx, reservation.ID)
		require.NoError(t, err)
		assert.False(t, settled)
	})
}

func TestReservationRepository_SumActive(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	auctions := NewAuctionRepository(testDB.DB)
	repo := NewReservationRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "seller", 100000)
	require.NoError(t, err)
	_, err = users.Create(ctx, 2, "bidder", 100000)
	require.NoError(t, err)

	auction := testutil.CreateTestAuction(1, 10)
	require.NoError(t, auctions.Create(ctx, auction))

	total, err := repo.SumActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	first := testutil.CreateTestReservation(2, auction.ID, 150)
	require.NoError(t, repo.Create(ctx, first))
	second := testutil.CreateTestReservation(2, auction.ID, 200)
	require.NoError(t, repo.Create(ctx, second))

	total, err = repo.SumActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)

	released, err := repo.MarkReleased(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, released)

	total, err = repo.SumActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(200), total)
}
