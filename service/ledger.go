package service

import (
	"context"
	"fmt"

	"auctionhouse/events"
	"auctionhouse/models"

	"github.com/google/uuid"
)

// RecordBalanceChange records a balance history entry and emits the
// balance change event. This is the single entry point for all balance
// changes in the system.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, history *models.BalanceHistory) error {
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          history.UserID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	})

	return nil
}

// ReserveFunds debits amount from the bidder's balance and opens an
// active reservation holding it in escrow, all within the caller's unit
// of work. Fails with models.ErrInsufficientFunds when the balance is
// short, leaving no effect.
func ReserveFunds(ctx context.Context, uow UnitOfWork, userID, auctionID, amount int64) (*models.Reservation, error) {
	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, models.ErrUserNotFound)
	}

	if err := uow.UserRepository().DeductBalance(ctx, userID, amount); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		ID:        uuid.New(),
		UserID:    userID,
		AuctionID: auctionID,
		Amount:    amount,
		Status:    models.ReservationStatusActive,
	}
	if err := uow.ReservationRepository().Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	resRelatedID := auctionID
	history := &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   user.Balance,
		BalanceAfter:    user.Balance - amount,
		ChangeAmount:    -amount,
		TransactionType: models.TransactionTypeBidEscrow,
		TransactionMetadata: map[string]any{
			"auction_id":     auctionID,
			"reservation_id": reservation.ID.String(),
		},
		RelatedID:   &resRelatedID,
		RelatedType: relatedTypePtr(models.RelatedTypeAuction),
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, err
	}

	return reservation, nil
}

// ReleaseReservation returns an active reservation's funds to its owner
// (the outbid refund path). The conditional status transition guarantees
// the refund is applied at most once.
func ReleaseReservation(ctx context.Context, uow UnitOfWork, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation, err := uow.ReservationRepository().GetByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	released, err := uow.ReservationRepository().MarkReleased(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !released {
		return nil, fmt.Errorf("reservation %s is no longer active", reservationID)
	}

	owner, err := uow.UserRepository().GetByID(ctx, reservation.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation owner: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("user %d: %w", reservation.UserID, models.ErrUserNotFound)
	}

	if err := uow.UserRepository().AddBalance(ctx, reservation.UserID, reservation.Amount); err != nil {
		return nil, fmt.Errorf("failed to refund reservation: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          reservation.UserID,
		BalanceBefore:   owner.Balance,
		BalanceAfter:    owner.Balance + reservation.Amount,
		ChangeAmount:    reservation.Amount,
		TransactionType: models.TransactionTypeBidRefund,
		TransactionMetadata: map[string]any{
			"auction_id":     reservation.AuctionID,
			"reservation_id": reservation.ID.String(),
		},
		RelatedID:   &reservation.AuctionID,
		RelatedType: relatedTypePtr(models.RelatedTypeAuction),
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.BidRefundedEvent{
		AuctionID: reservation.AuctionID,
		BidderID:  reservation.UserID,
		Amount:    reservation.Amount,
	})

	return reservation, nil
}

// SettleReservation transfers an active reservation's escrowed amount to
// the recipient, consuming the reservation. Used at auction close to pay
// the seller.
func SettleReservation(ctx context.Context, uow UnitOfWork, reservationID uuid.UUID, recipientID int64) (*models.Reservation, error) {
	reservation, err := uow.ReservationRepository().GetByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	settled, err := uow.ReservationRepository().MarkSettled(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !settled {
		return nil, fmt.Errorf("reservation %s is no longer active", reservationID)
	}

	recipient, err := uow.UserRepository().GetByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}
	if recipient == nil {
		return nil, fmt.Errorf("user %d: %w", recipientID, models.ErrUserNotFound)
	}

	if err := uow.UserRepository().AddBalance(ctx, recipientID, reservation.Amount); err != nil {
		return nil, fmt.Errorf("failed to pay out reservation: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          recipientID,
		BalanceBefore:   recipient.Balance,
		BalanceAfter:    recipient.Balance + reservation.Amount,
		ChangeAmount:    reservation.Amount,
		TransactionType: models.TransactionTypeAuctionPayout,
		TransactionMetadata: map[string]any{
			"auction_id":     reservation.AuctionID,
			"reservation_id": reservation.ID.String(),
			"bidder_id":      reservation.UserID,
		},
		RelatedID:   &reservation.AuctionID,
		RelatedType: relatedTypePtr(models.RelatedTypeAuction),
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, err
	}

	return reservation, nil
}

// Helper function to get a pointer to a RelatedType
func relatedTypePtr(rt models.RelatedType) *models.RelatedType {
	return &rt
}
