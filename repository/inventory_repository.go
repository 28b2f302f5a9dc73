package repository

import (
	"context"
	"fmt"

	"auctionhouse/database"
	"auctionhouse/models"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the service.InventoryRepository interface
type InventoryRepository struct {
	q queryable
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.DB) *InventoryRepository {
	return &InventoryRepository{q: db.Pool}
}

// newInventoryRepositoryWithTx creates a new inventory repository with a transaction
func newInventoryRepositoryWithTx(tx queryable) *InventoryRepository {
	return &InventoryRepository{q: tx}
}

// GetQuantity returns the quantity of an item held by a user, zero when
// no entry exists
func (r *InventoryRepository) GetQuantity(ctx context.Context, userID, itemID int64) (int64, error) {
	query := `
		SELECT quantity
		FROM inventory_entries
		WHERE user_id = $1 AND item_id = $2
	`

	var quantity int64
	err := r.q.QueryRow(ctx, query, userID, itemID).Scan(&quantity)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get inventory for user %d item %d: %w", userID, itemID, err)
	}

	return quantity, nil
}

// GetByUser returns all inventory entries for a user
func (r *InventoryRepository) GetByUser(ctx context.Context, userID int64) ([]*models.InventoryEntry, error) {
	query := `
		SELECT user_id, item_id, quantity, created_at, updated_at
		FROM inventory_entries
		WHERE user_id = $1
		ORDER BY item_id
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.InventoryEntry
	for rows.Next() {
		var entry models.InventoryEntry
		err := rows.Scan(
			&entry.UserID,
			&entry.ItemID,
			&entry.Quantity,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory entries: %w", err)
	}

	return entries, nil
}

// Withdraw atomically decrements a user's held quantity, failing when the
// held quantity is short. The entry row is removed once it hits zero.
func (r *InventoryRepository) Withdraw(ctx context.Context, userID, itemID, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	query := `
		UPDATE inventory_entries
		SET quantity = quantity - $3, updated_at = NOW()
		WHERE user_id = $1 AND item_id = $2 AND quantity >= $3
	`

	result, err := r.q.Exec(ctx, query, userID, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to withdraw inventory for user %d item %d: %w", userID, itemID, err)
	}

	if result.RowsAffected() == 0 {
		held, err := r.GetQuantity(ctx, userID, itemID)
		if err != nil {
			return fmt.Errorf("failed to check inventory: %w", err)
		}
		return fmt.Errorf("have %d, need %d of item %d: %w", held, quantity, itemID, models.ErrInsufficientQuantity)
	}

	cleanup := `
		DELETE FROM inventory_entries
		WHERE user_id = $1 AND item_id = $2 AND quantity = 0
	`
	if _, err := r.q.Exec(ctx, cleanup, userID, itemID); err != nil {
		return fmt.Errorf("failed to remove empty inventory entry: %w", err)
	}

	return nil
}

// Deposit atomically increments a user's held quantity, creating the
// entry when absent
func (r *InventoryRepository) Deposit(ctx context.Context, userID, itemID, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	query := `
		INSERT INTO inventory_entries (user_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = inventory_entries.quantity + $3, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, userID, itemID, quantity); err != nil {
		return fmt.Errorf("failed to deposit inventory for user %d item %d: %w", userID, itemID, err)
	}

	return nil
}
