package models

import (
	"time"

	"github.com/google/uuid"
)

// SettlementRecord is the append-only outcome of one auction: a pending
// reward claim for the winner (the final bidder, or the seller when the
// auction drew no bids). Records are never mutated after creation.
type SettlementRecord struct {
	ID        uuid.UUID `db:"id"`
	AuctionID int64     `db:"auction_id"`
	WinnerID  int64     `db:"winner_id"`
	ItemID    int64     `db:"item_id"`
	Quantity  int64     `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
}

// RewardClaim records the redemption of one settlement record. Claims
// live in their own table so settlement records stay append-only; the
// unique settlement_id constraint makes redemption exactly-once.
type RewardClaim struct {
	ID           uuid.UUID `db:"id"`
	SettlementID uuid.UUID `db:"settlement_id"`
	UserID       int64     `db:"user_id"`
	CreatedAt    time.Time `db:"created_at"`
}
