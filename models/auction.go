package models

import (
	"time"

	"github.com/google/uuid"
)

// AuctionStatus represents the lifecycle state of an auction
type AuctionStatus string

const (
	AuctionStatusOpen    AuctionStatus = "open"
	AuctionStatusSettled AuctionStatus = "settled"
)

// Auction represents a listing of escrowed items open for bidding.
// The auction itself owns the listed quantity from creation until
// settlement; neither seller nor bidder can touch it in between.
type Auction struct {
	ID                   int64         `db:"id"`
	SellerID             int64         `db:"seller_id"`
	ItemID               int64         `db:"item_id"`
	Quantity             int64         `db:"quantity"`
	StartPrice           int64         `db:"start_price"`
	CurrentBid           int64         `db:"current_bid"`
	CurrentBidderID      *int64        `db:"current_bidder_id"`
	CurrentReservationID *uuid.UUID    `db:"current_reservation_id"`
	Status               AuctionStatus `db:"status"`
	ExpiresAt            time.Time     `db:"expires_at"`
	CreatedAt            time.Time     `db:"created_at"`
	SettledAt            *time.Time    `db:"settled_at"`
}

// HasBid reports whether at least one bid has been accepted
func (a *Auction) HasBid() bool {
	return a.CurrentBidderID != nil
}

// IsDue reports whether the auction has passed its expiry and still awaits settlement
func (a *Auction) IsDue(now time.Time) bool {
	return a.Status == AuctionStatusOpen && !now.Before(a.ExpiresAt)
}

// WinnerID returns the user the settlement record is written for:
// the final bidder, or the seller when the auction drew no bids.
func (a *Auction) WinnerID() int64 {
	if a.CurrentBidderID != nil {
		return *a.CurrentBidderID
	}
	return a.SellerID
}
