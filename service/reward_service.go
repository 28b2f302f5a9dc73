package service

import (
	"context"
	"fmt"

	"auctionhouse/models"

	"github.com/google/uuid"
)

type rewardService struct {
	uowFactory UnitOfWorkFactory
}

// NewRewardService creates a new reward service
func NewRewardService(uowFactory UnitOfWorkFactory) RewardService {
	return &rewardService{
		uowFactory: uowFactory,
	}
}

// ListRewards returns a user's unclaimed settlement records
func (s *rewardService) ListRewards(ctx context.Context, userID int64) ([]*models.SettlementRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.SettlementRepository().ListUnclaimedByWinner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	return records, nil
}

// ClaimReward deposits a settled item into the winner's inventory. The
// claim insert and the deposit commit together; the unique claim
// constraint makes redemption exactly-once.
func (s *rewardService) ClaimReward(ctx context.Context, settlementID uuid.UUID, userID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	record, err := uow.SettlementRepository().GetRecordByID(ctx, settlementID)
	if err != nil {
		return fmt.Errorf("failed to get settlement record: %w", err)
	}
	// A record belonging to someone else is not distinguishable from a
	// missing one
	if record == nil || record.WinnerID != userID {
		return fmt.Errorf("settlement %s: %w", settlementID, models.ErrRewardNotFound)
	}

	claim := &models.RewardClaim{
		ID:           uuid.New(),
		SettlementID: settlementID,
		UserID:       userID,
	}
	if err := uow.SettlementRepository().CreateClaim(ctx, claim); err != nil {
		return err
	}

	if err := uow.InventoryRepository().Deposit(ctx, userID, record.ItemID, record.Quantity); err != nil {
		return fmt.Errorf("failed to deposit reward: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
