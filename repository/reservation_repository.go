package repository

import (
	"context"
	"fmt"

	"auctionhouse/database"
	"auctionhouse/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReservationRepository implements the service.ReservationRepository interface
type ReservationRepository struct {
	q queryable
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *database.DB) *ReservationRepository {
	return &ReservationRepository{q: db.Pool}
}

// newReservationRepositoryWithTx creates a new reservation repository with a transaction
func newReservationRepositoryWithTx(tx queryable) *ReservationRepository {
	return &ReservationRepository{q: tx}
}

// Create inserts a new active reservation. The caller debits the user's
// balance in the same unit of work.
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, auction_id, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		reservation.ID,
		reservation.UserID,
		reservation.AuctionID,
		reservation.Amount,
		reservation.Status,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create reservation for user %d: %w", reservation.UserID, err)
	}

	return nil
}

// GetByID retrieves a reservation by its ID, nil when absent
func (r *ReservationRepository) GetByID(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	query := `
		SELECT id, user_id, auction_id, amount, status, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`

	var reservation models.Reservation
	err := r.q.QueryRow(ctx, query, reservationID).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.AuctionID,
		&reservation.Amount,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation %s: %w", reservationID, err)
	}

	return &reservation, nil
}

// MarkReleased transitions the reservation from active to released.
// Reports whether the transition happened; a false result means the
// reservation was already released or settled.
func (r *ReservationRepository) MarkReleased(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	return r.transition(ctx, reservationID, models.ReservationStatusReleased)
}

// MarkSettled transitions the reservation from active to settled
func (r *ReservationRepository) MarkSettled(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	return r.transition(ctx, reservationID, models.ReservationStatusSettled)
}

func (r *ReservationRepository) transition(ctx context.Context, reservationID uuid.UUID, to models.ReservationStatus) (bool, error) {
	query := `
		UPDATE reservations
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`

	result, err := r.q.Exec(ctx, query, reservationID, to)
	if err != nil {
		return false, fmt.Errorf("failed to mark reservation %s %s: %w", reservationID, to, err)
	}

	return result.RowsAffected() == 1, nil
}

// SumActive returns the total amount held across all active reservations
func (r *ReservationRepository) SumActive(ctx context.Context) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM reservations
		WHERE status = 'active'
	`

	var total int64
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum active reservations: %w", err)
	}

	return total, nil
}
