package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the state of escrowed currency
type ReservationStatus string

const (
	ReservationStatusActive   ReservationStatus = "active"
	ReservationStatusReleased ReservationStatus = "released"
	ReservationStatusSettled  ReservationStatus = "settled"
)

// Reservation represents currency debited from a bidder and held in
// escrow for one bid. Exactly one of two things happens to an active
// reservation: it is released back to the bidder (outbid refund) or
// settled to the seller at auction close.
type Reservation struct {
	ID        uuid.UUID         `db:"id"`
	UserID    int64             `db:"user_id"`
	AuctionID int64             `db:"auction_id"`
	Amount    int64             `db:"amount"`
	Status    ReservationStatus `db:"status"`
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
}

// IsActive reports whether the reservation still holds escrowed funds
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}
