package repository

import (
	"context"
	"testing"
	"time"

	"auctionhouse/models"
	"auctionhouse/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuctionRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewAuctionRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "seller", 100000)
	require.NoError(t, err)

	t.Run("auction not found", func(t *testing.T) {
		auction, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, auction)
	})

	t.Run("create and retrieve", func(t *testing.T) {
		auction := testutil.CreateTestAuction(1, 10)
		err := repo.Create(ctx, auction)
		require.NoError(t, err)
		assert.NotZero(t, auction.ID)
		assert.False(t, auction.CreatedAt.IsZero())

		got, err := repo.GetByID(ctx, auction.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, int64(1), got.SellerID)
		assert.Equal(t, int64(10), got.ItemID)
		assert.Equal(t, int64(100), got.CurrentBid)
		assert.Nil(t, got.CurrentBidderID)
		assert.Nil(t, got.CurrentReservationID)
		assert.Equal(t, models.AuctionStatusOpen, got.Status)
	})
}

func TestAuctionRepository_ApplyBid(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewAuctionRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "seller", 100000)
	require.NoError(t, err)
	_, err = users.Create(ctx, 2, "bidder", 100000)
	require.NoError(t, err)

	auction := testutil.CreateTestAuction(1, 10)
	require.NoError(t, repo.Create(ctx, auction))

	t.Run("applies when expectation matches", func(t *testing.T) {
		reservationID := uuid.New()
		applied, err := repo.ApplyBid(ctx, auction.ID, 100, 150, 2, reservationID)
		require.NoError(t, err)
		assert.True(t, applied)

		got, err := repo.GetByID(ctx, auction.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(150), got.CurrentBid)
		require.NotNil(t, got.CurrentBidderID)
		assert.Equal(t, int64(2), *got.CurrentBidderID)
		require.NotNil(t, got.CurrentReservationID)
		assert.Equal(t, reservationID, *got.CurrentReservationID)
	})

	t.Run("rejects a stale expectation", func(t *testing.T) {
		applied, err := repo.ApplyBid(ctx, auction.ID, 100, 200, 2, uuid.New())
		require.NoError(t, err)
		assert.False(t, applied)

		// State unchanged
		got, err := repo.GetByID(ctx, auction.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(150), got.CurrentBid)
	})

	t.Run("rejects once settled", func(t *testing.T) {
		claimed, err := repo.MarkSettled(ctx, auction.ID, time.Now())
		require.NoError(t, err)
		require.True(t, claimed)

		applied, err := repo.ApplyBid(ctx, auction.ID, 150, 200, 2, uuid.New())
		require.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestAuctionRepository_MarkSettled(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewAuctionRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "seller", 100000)
	require.NoError(t, err)

	auction := testutil.CreateTestAuction(1, 10)
	require.NoError(t, repo.Create(ctx, auction))

	t.Run("first claim wins", func(t *testing.T) {
		claimed, err := repo.MarkSettled(ctx, auction.ID, time.Now())
		require.NoError(t, err)
		assert.True(t, claimed)

		got, err := repo.GetByID(ctx, auction.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AuctionStatusSettled, got.Status)
		require.NotNil(t, got.SettledAt)
	})

	t.Run("second claim loses", func(t *testing.T) {
		claimed, err := repo.MarkSettled(ctx, auction.ID, time.Now())
		require.NoError(t, err)
		assert.False(t, claimed)
	})
}

func TestAuctionRepository_Listing(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewAuctionRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 1, "seller", 100000)
	require.NoError(t, err)

	now := time.Now()

	open := testutil.CreateTestAuctionExpiringAt(1, 10, now.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, open))

	due := testutil.CreateTestAuctionExpiringAt(1, 11, now.Add(-time.Minute))
	require.NoError(t, repo.Create(ctx, due))

	settled := testutil.CreateTestAuctionExpiringAt(1, 12, now.Add(-time.Hour))
	require.NoError(t, repo.Create(ctx, settled))
	claimed, err := repo.MarkSettled(ctx, settled.ID, now)
	require.NoError(t, err)
	require.True(t, claimed)

	t.Run("list open", func(t *testing.T) {
		auctions, err := repo.ListOpen(ctx)
		require.NoError(t, err)
		require.Len(t, auctions, 2)
	})

	t.Run("list due excludes live and settled", func(t *testing.T) {
		auctions, err := repo.ListDue(ctx, now)
		require.NoError(t, err)
		require.Len(t, auctions, 1)
		assert.Equal(t, due.ID, auctions[0].ID)
	})
}
