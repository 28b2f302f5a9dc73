package models

import "time"

// InventoryEntry represents the quantity of one item held by one user.
// Entries are created on first deposit and removed when the quantity
// reaches zero.
type InventoryEntry struct {
	UserID    int64     `db:"user_id"`
	ItemID    int64     `db:"item_id"`
	Quantity  int64     `db:"quantity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
