package repository

import (
	"context"
	"fmt"
	"time"

	"auctionhouse/database"
	"auctionhouse/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AuctionRepository implements the service.AuctionRepository interface
type AuctionRepository struct {
	q queryable
}

// NewAuctionRepository creates a new auction repository
func NewAuctionRepository(db *database.DB) *AuctionRepository {
	return &AuctionRepository{q: db.Pool}
}

// newAuctionRepositoryWithTx creates a new auction repository with a transaction
func newAuctionRepositoryWithTx(tx queryable) *AuctionRepository {
	return &AuctionRepository{q: tx}
}

const auctionColumns = `
	id, seller_id, item_id, quantity, start_price, current_bid,
	current_bidder_id, current_reservation_id, status, expires_at,
	created_at, settled_at
`

func scanAuction(row pgx.Row) (*models.Auction, error) {
	var auction models.Auction
	err := row.Scan(
		&auction.ID,
		&auction.SellerID,
		&auction.ItemID,
		&auction.Quantity,
		&auction.StartPrice,
		&auction.CurrentBid,
		&auction.CurrentBidderID,
		&auction.CurrentReservationID,
		&auction.Status,
		&auction.ExpiresAt,
		&auction.CreatedAt,
		&auction.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

// Create inserts a new open auction. The caller is responsible for the
// seller's inventory withdrawal within the same unit of work.
func (r *AuctionRepository) Create(ctx context.Context, auction *models.Auction) error {
	query := `
		INSERT INTO auctions
		(seller_id, item_id, quantity, start_price, current_bid, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		auction.SellerID,
		auction.ItemID,
		auction.Quantity,
		auction.StartPrice,
		auction.CurrentBid,
		auction.Status,
		auction.ExpiresAt,
	).Scan(&auction.ID, &auction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create auction for seller %d: %w", auction.SellerID, err)
	}

	return nil
}

// GetByID retrieves an auction by its ID, nil when absent
func (r *AuctionRepository) GetByID(ctx context.Context, auctionID int64) (*models.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`

	auction, err := scanAuction(r.q.QueryRow(ctx, query, auctionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction %d: %w", auctionID, err)
	}

	return auction, nil
}

// ListOpen returns all open auctions
func (r *AuctionRepository) ListOpen(ctx context.Context) ([]*models.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE status = 'open'`
	return r.list(ctx, query)
}

// ListDue returns all open auctions whose expiry has passed
func (r *AuctionRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE status = 'open' AND expires_at <= $1`
	return r.list(ctx, query, now)
}

func (r *AuctionRepository) list(ctx context.Context, query string, args ...any) ([]*models.Auction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	defer rows.Close()

	var auctions []*models.Auction
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		auctions = append(auctions, auction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auctions: %w", err)
	}

	return auctions, nil
}

// ApplyBid commits a bid against the auction only if the auction is still
// open and its current bid matches the value the caller read. The bid
// amount strictly increases on every accepted bid, so an unchanged
// current_bid proves nothing was applied in between. Reports whether the
// bid won the race.
func (r *AuctionRepository) ApplyBid(ctx context.Context, auctionID, expectedBid, amount, bidderID int64, reservationID uuid.UUID) (bool, error) {
	query := `
		UPDATE auctions
		SET current_bid = $3, current_bidder_id = $4, current_reservation_id = $5
		WHERE id = $1 AND status = 'open' AND current_bid = $2
	`

	result, err := r.q.Exec(ctx, query, auctionID, expectedBid, amount, bidderID, reservationID)
	if err != nil {
		return false, fmt.Errorf("failed to apply bid on auction %d: %w", auctionID, err)
	}

	return result.RowsAffected() == 1, nil
}

// MarkSettled transitions the auction from open to settled. Reports
// whether this caller claimed the transition; a false result means
// another worker settled the auction first.
func (r *AuctionRepository) MarkSettled(ctx context.Context, auctionID int64, settledAt time.Time) (bool, error) {
	query := `
		UPDATE auctions
		SET status = 'settled', settled_at = $2
		WHERE id = $1 AND status = 'open'
	`

	result, err := r.q.Exec(ctx, query, auctionID, settledAt)
	if err != nil {
		return false, fmt.Errorf("failed to mark auction %d settled: %w", auctionID, err)
	}

	return result.RowsAffected() == 1, nil
}
