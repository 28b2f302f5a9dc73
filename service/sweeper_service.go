package service

import (
	"context"
	"fmt"
	"time"

	"auctionhouse/events"
	"auctionhouse/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type sweeperService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewSweeperService creates a new expiry sweeper service
func NewSweeperService(uowFactory UnitOfWorkFactory) SweeperService {
	return &sweeperService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// SweepExpired settles every due auction. Each auction settles in its own
// transaction so one failure never blocks the rest of the tick, and the
// open-to-settled claim inside that transaction guarantees exactly-once
// settlement even with concurrent sweepers. Returns the number of
// auctions this call settled.
func (s *sweeperService) SweepExpired(ctx context.Context) (int, error) {
	due, err := s.listDue(ctx)
	if err != nil {
		return 0, err
	}

	var settled, failed int
	for _, auction := range due {
		claimed, err := s.settleAuction(ctx, auction.ID)
		if err != nil {
			log.WithFields(log.Fields{
				"auction_id": auction.ID,
				"error":      err,
			}).Error("Failed to settle auction, will retry next sweep")
			failed++
			continue
		}
		if claimed {
			settled++
		}
	}

	if len(due) > 0 {
		log.WithFields(log.Fields{
			"due":     len(due),
			"settled": settled,
			"failed":  failed,
		}).Info("Completed expiry sweep")
	}

	return settled, nil
}

func (s *sweeperService) listDue(ctx context.Context) ([]*models.Auction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	due, err := uow.AuctionRepository().ListDue(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list due auctions: %w", err)
	}

	return due, nil
}

// settleAuction performs the terminal transition for one auction. The
// claimed result is false when another worker settled it first; that is
// not an error. All effects (payout, settlement record, status change)
// commit atomically.
func (s *sweeperService) settleAuction(ctx context.Context, auctionID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	claimed, err := uow.AuctionRepository().MarkSettled(ctx, auctionID, s.now())
	if err != nil {
		return false, err
	}
	if !claimed {
		return false, nil
	}

	// Re-read inside the transaction: the listed snapshot may predate a
	// late bid, the claimed row cannot.
	auction, err := uow.AuctionRepository().GetByID(ctx, auctionID)
	if err != nil {
		return false, fmt.Errorf("failed to get claimed auction: %w", err)
	}
	if auction == nil {
		return false, fmt.Errorf("auction %d vanished during settlement", auctionID)
	}

	if auction.CurrentReservationID != nil {
		// Winning bidder's escrow pays the seller
		if _, err := SettleReservation(ctx, uow, *auction.CurrentReservationID, auction.SellerID); err != nil {
			return false, fmt.Errorf("failed to pay seller: %w", err)
		}
	}

	record := &models.SettlementRecord{
		ID:        uuid.New(),
		AuctionID: auction.ID,
		WinnerID:  auction.WinnerID(),
		ItemID:    auction.ItemID,
		Quantity:  auction.Quantity,
	}
	if err := uow.SettlementRepository().CreateRecord(ctx, record); err != nil {
		return false, err
	}

	uow.EventBus().Publish(events.AuctionSettledEvent{
		AuctionID: auction.ID,
		WinnerID:  record.WinnerID,
		ItemID:    auction.ItemID,
		Quantity:  auction.Quantity,
		FinalBid:  auction.CurrentBid,
	})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit settlement: %w", err)
	}

	return true, nil
}
