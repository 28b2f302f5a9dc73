package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auctionhouse/events"
	"auctionhouse/models"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

type auctionService struct {
	uowFactory     UnitOfWorkFactory
	maxBidAttempts int
	now            func() time.Time
}

// NewAuctionService creates a new auction service. maxBidAttempts bounds
// the optimistic retries of a bid that keeps losing the commit race.
func NewAuctionService(uowFactory UnitOfWorkFactory, maxBidAttempts int) AuctionService {
	return &auctionService{
		uowFactory:     uowFactory,
		maxBidAttempts: maxBidAttempts,
		now:            time.Now,
	}
}

// CreateAuction lists quantity of an item for auction. The seller's
// inventory is debited immediately; the auction itself holds the items in
// escrow until settlement. The withdrawal and the auction insert commit
// together or not at all.
func (s *auctionService) CreateAuction(ctx context.Context, sellerID, itemID, quantity, startPrice int64, duration time.Duration) (*models.Auction, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if startPrice < 0 {
		return nil, fmt.Errorf("start price cannot be negative")
	}
	if duration <= 0 {
		return nil, fmt.Errorf("auction duration must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	seller, err := uow.UserRepository().GetByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if seller == nil {
		return nil, fmt.Errorf("seller %d: %w", sellerID, models.ErrUserNotFound)
	}

	if err := uow.InventoryRepository().Withdraw(ctx, sellerID, itemID, quantity); err != nil {
		return nil, err
	}

	auction := &models.Auction{
		SellerID:   sellerID,
		ItemID:     itemID,
		Quantity:   quantity,
		StartPrice: startPrice,
		CurrentBid: startPrice,
		Status:     models.AuctionStatusOpen,
		ExpiresAt:  s.now().Add(duration),
	}
	if err := uow.AuctionRepository().Create(ctx, auction); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.AuctionCreatedEvent{
		AuctionID:  auction.ID,
		SellerID:   sellerID,
		ItemID:     itemID,
		Quantity:   quantity,
		StartPrice: startPrice,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return auction, nil
}

// PlaceBid validates and applies a bid. The bidder's funds are reserved
// and the bid committed against the auction's current state in one
// transaction; losing the commit race rolls everything back and retries
// from a fresh read, up to maxBidAttempts.
func (s *auctionService) PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (*models.Auction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("bid amount must be positive")
	}

	for attempt := 0; attempt < s.maxBidAttempts; attempt++ {
		auction, applied, err := s.tryPlaceBid(ctx, auctionID, bidderID, amount)
		if err != nil {
			// Deadlocks and serialization failures between concurrent
			// bids are transient; the fresh attempt re-reads everything
			if isRetryableTxError(err) {
				applied = false
			} else {
				return nil, err
			}
		}
		if applied {
			return auction, nil
		}

		log.WithFields(log.Fields{
			"auction_id": auctionID,
			"bidder_id":  bidderID,
			"attempt":    attempt + 1,
		}).Debug("Bid lost commit race, retrying")
	}

	return nil, fmt.Errorf("auction %d: %w", auctionID, models.ErrBidConflict)
}

// isRetryableTxError reports whether the transaction failed for a
// transient reason worth another attempt
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 40001 serialization_failure, 40P01 deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// tryPlaceBid runs one optimistic attempt. A false applied result means
// a concurrent bid committed between our read and our compare-and-apply.
func (s *auctionService) tryPlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (*models.Auction, bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	auction, err := uow.AuctionRepository().GetByID(ctx, auctionID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get auction: %w", err)
	}
	if auction == nil {
		return nil, false, fmt.Errorf("auction %d: %w", auctionID, models.ErrAuctionNotFound)
	}
	if auction.Status == models.AuctionStatusSettled {
		return nil, false, fmt.Errorf("auction %d: %w", auctionID, models.ErrAuctionSettled)
	}
	// Due auctions belong to the sweeper even before it has run
	if auction.IsDue(s.now()) {
		return nil, false, fmt.Errorf("auction %d: %w", auctionID, models.ErrAuctionExpired)
	}
	if amount <= auction.CurrentBid {
		return nil, false, fmt.Errorf("bid %d must exceed current bid %d: %w", amount, auction.CurrentBid, models.ErrBidTooLow)
	}

	reservation, err := ReserveFunds(ctx, uow, bidderID, auctionID, amount)
	if err != nil {
		return nil, false, err
	}

	applied, err := uow.AuctionRepository().ApplyBid(ctx, auctionID, auction.CurrentBid, amount, bidderID, reservation.ID)
	if err != nil {
		return nil, false, err
	}
	if !applied {
		// Rollback undoes the reservation and its balance debit
		return nil, false, nil
	}

	// Refund the outbid bidder before their reservation reference is
	// forgotten; commits atomically with the new bid.
	if auction.CurrentReservationID != nil {
		if _, err := ReleaseReservation(ctx, uow, *auction.CurrentReservationID); err != nil {
			return nil, false, fmt.Errorf("failed to refund previous bidder: %w", err)
		}
	}

	uow.EventBus().Publish(events.BidPlacedEvent{
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	auction.CurrentBid = amount
	auction.CurrentBidderID = &bidderID
	auction.CurrentReservationID = &reservation.ID

	return auction, true, nil
}

// GetAuction retrieves an auction by ID
func (s *auctionService) GetAuction(ctx context.Context, auctionID int64) (*models.Auction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	auction, err := uow.AuctionRepository().GetByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	if auction == nil {
		return nil, fmt.Errorf("auction %d: %w", auctionID, models.ErrAuctionNotFound)
	}

	return auction, nil
}

// ListOpenAuctions returns all open auctions
func (s *auctionService) ListOpenAuctions(ctx context.Context) ([]*models.Auction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	auctions, err := uow.AuctionRepository().ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open auctions: %w", err)
	}

	return auctions, nil
}
