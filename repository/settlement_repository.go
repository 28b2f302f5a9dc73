package repository

import (
	"context"
	"errors"
	"fmt"

	"auctionhouse/database"
	"auctionhouse/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SettlementRepository implements the service.SettlementRepository
// interface covering both settlement records and reward claims
type SettlementRepository struct {
	q queryable
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *database.DB) *SettlementRepository {
	return &SettlementRepository{q: db.Pool}
}

// newSettlementRepositoryWithTx creates a new settlement repository with a transaction
func newSettlementRepositoryWithTx(tx queryable) *SettlementRepository {
	return &SettlementRepository{q: tx}
}

// CreateRecord appends a settlement record. The unique auction_id
// constraint enforces at most one record per auction.
func (r *SettlementRepository) CreateRecord(ctx context.Context, record *models.SettlementRecord) error {
	query := `
		INSERT INTO settlement_records (id, auction_id, winner_id, item_id, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		record.ID,
		record.AuctionID,
		record.WinnerID,
		record.ItemID,
		record.Quantity,
	).Scan(&record.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create settlement record for auction %d: %w", record.AuctionID, err)
	}

	return nil
}

// GetRecordByID retrieves a settlement record by its ID, nil when absent
func (r *SettlementRepository) GetRecordByID(ctx context.Context, settlementID uuid.UUID) (*models.SettlementRecord, error) {
	query := `
		SELECT id, auction_id, winner_id, item_id, quantity, created_at
		FROM settlement_records
		WHERE id = $1
	`
	return r.scanRecord(r.q.QueryRow(ctx, query, settlementID))
}

// GetRecordByAuction retrieves the settlement record for an auction, nil when absent
func (r *SettlementRepository) GetRecordByAuction(ctx context.Context, auctionID int64) (*models.SettlementRecord, error) {
	query := `
		SELECT id, auction_id, winner_id, item_id, quantity, created_at
		FROM settlement_records
		WHERE auction_id = $1
	`
	return r.scanRecord(r.q.QueryRow(ctx, query, auctionID))
}

func (r *SettlementRepository) scanRecord(row pgx.Row) (*models.SettlementRecord, error) {
	var record models.SettlementRecord
	err := row.Scan(
		&record.ID,
		&record.AuctionID,
		&record.WinnerID,
		&record.ItemID,
		&record.Quantity,
		&record.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement record: %w", err)
	}

	return &record, nil
}

// ListUnclaimedByWinner returns settlement records for a winner that have
// no reward claim yet, oldest first
func (r *SettlementRepository) ListUnclaimedByWinner(ctx context.Context, winnerID int64) ([]*models.SettlementRecord, error) {
	query := `
		SELECT sr.id, sr.auction_id, sr.winner_id, sr.item_id, sr.quantity, sr.created_at
		FROM settlement_records sr
		LEFT JOIN reward_claims rc ON rc.settlement_id = sr.id
		WHERE sr.winner_id = $1 AND rc.id IS NULL
		ORDER BY sr.created_at
	`

	rows, err := r.q.Query(ctx, query, winnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unclaimed settlements for user %d: %w", winnerID, err)
	}
	defer rows.Close()

	var records []*models.SettlementRecord
	for rows.Next() {
		var record models.SettlementRecord
		err := rows.Scan(
			&record.ID,
			&record.AuctionID,
			&record.WinnerID,
			&record.ItemID,
			&record.Quantity,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement records: %w", err)
	}

	return records, nil
}

// CreateClaim records the redemption of one settlement record. The unique
// settlement_id constraint makes a second claim fail with
// models.ErrRewardAlreadyClaimed.
func (r *SettlementRepository) CreateClaim(ctx context.Context, claim *models.RewardClaim) error {
	query := `
		INSERT INTO reward_claims (id, settlement_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		claim.ID,
		claim.SettlementID,
		claim.UserID,
	).Scan(&claim.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("settlement %s: %w", claim.SettlementID, models.ErrRewardAlreadyClaimed)
	}
	if err != nil {
		return fmt.Errorf("failed to create reward claim for settlement %s: %w", claim.SettlementID, err)
	}

	return nil
}
