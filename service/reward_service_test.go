package service

import (
	"context"
	"testing"

	"auctionhouse/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRewardService_ClaimReward(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(ctx)
	m.uow.On("Commit").Return(nil)

	settlementID := uuid.New()
	record := &models.SettlementRecord{
		ID:        settlementID,
		AuctionID: 7,
		WinnerID:  3,
		ItemID:    10,
		Quantity:  2,
	}
	m.settlements.On("GetRecordByID", ctx, settlementID).Return(record, nil)
	m.settlements.On("CreateClaim", ctx, mock.MatchedBy(func(c *models.RewardClaim) bool {
		return c.SettlementID == settlementID && c.UserID == 3
	})).Return(nil)
	m.inventory.On("Deposit", ctx, int64(3), int64(10), int64(2)).Return(nil)

	err := NewRewardService(m.factory).ClaimReward(ctx, settlementID, 3)

	require.NoError(t, err)
	m.settlements.AssertExpectations(t)
	m.inventory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}

func TestRewardService_ClaimReward_WrongUser(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(ctx)

	settlementID := uuid.New()
	record := &models.SettlementRecord{ID: settlementID, WinnerID: 3}
	m.settlements.On("GetRecordByID", ctx, settlementID).Return(record, nil)

	err := NewRewardService(m.factory).ClaimReward(ctx, settlementID, 99)

	assert.ErrorIs(t, err, models.ErrRewardNotFound)
	m.settlements.AssertNotCalled(t, "CreateClaim", mock.Anything, mock.Anything)
}

func TestRewardService_ClaimReward_Missing(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(ctx)

	settlementID := uuid.New()
	m.settlements.On("GetRecordByID", ctx, settlementID).Return(nil, nil)

	err := NewRewardService(m.factory).ClaimReward(ctx, settlementID, 3)

	assert.ErrorIs(t, err, models.ErrRewardNotFound)
}

func TestRewardService_ClaimReward_AlreadyClaimed(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(ctx)

	settlementID := uuid.New()
	record := &models.SettlementRecord{ID: settlementID, WinnerID: 3, ItemID: 10, Quantity: 2}
	m.settlements.On("GetRecordByID", ctx, settlementID).Return(record, nil)
	m.settlements.On("CreateClaim", ctx, mock.AnythingOfType("*models.RewardClaim")).
		Return(models.ErrRewardAlreadyClaimed)

	err := NewRewardService(m.factory).ClaimReward(ctx, settlementID, 3)

	assert.ErrorIs(t, err, models.ErrRewardAlreadyClaimed)
	m.inventory.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestRewardService_ListRewards(t *testing.T) {
	ctx := context.Background()
	m := newServiceMocks(ctx)

	records := []*models.SettlementRecord{
		{ID: uuid.New(), AuctionID: 7, WinnerID: 3, ItemID: 10, Quantity: 2},
	}
	m.settlements.On("ListUnclaimedByWinner", ctx, int64(3)).Return(records, nil)

	got, err := NewRewardService(m.factory).ListRewards(ctx, 3)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}
