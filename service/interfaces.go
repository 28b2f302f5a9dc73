package service

import (
	"context"
	"time"

	"auctionhouse/events"
	"auctionhouse/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by their ID, nil when absent
	GetByID(ctx context.Context, userID int64) (*models.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, userID int64, username string, initialBalance int64) (*models.User, error)

	// AddBalance adds to a user's balance atomically
	AddBalance(ctx context.Context, userID int64, amount int64) error

	// DeductBalance deducts from a user's balance atomically, failing
	// with models.ErrInsufficientFunds on underflow
	DeductBalance(ctx context.Context, userID int64, amount int64) error

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*models.User, error)
}

// InventoryRepository defines the interface for item inventory data access
type InventoryRepository interface {
	// GetQuantity returns the held quantity, zero when no entry exists
	GetQuantity(ctx context.Context, userID, itemID int64) (int64, error)

	// GetByUser returns all inventory entries for a user
	GetByUser(ctx context.Context, userID int64) ([]*models.InventoryEntry, error)

	// Withdraw atomically decrements held quantity, failing with
	// models.ErrInsufficientQuantity when short
	Withdraw(ctx context.Context, userID, itemID, quantity int64) error

	// Deposit atomically increments held quantity, creating the entry
	// when absent
	Deposit(ctx context.Context, userID, itemID, quantity int64) error
}

// AuctionRepository defines the interface for auction data access
type AuctionRepository interface {
	// Create inserts a new open auction
	Create(ctx context.Context, auction *models.Auction) error

	// GetByID retrieves an auction by its ID, nil when absent
	GetByID(ctx context.Context, auctionID int64) (*models.Auction, error)

	// ListOpen returns all open auctions
	ListOpen(ctx context.Context) ([]*models.Auction, error)

	// ListDue returns all open auctions whose expiry has passed
	ListDue(ctx context.Context, now time.Time) ([]*models.Auction, error)

	// ApplyBid commits a bid only if the auction is still open and its
	// current bid matches expectedBid; reports whether the bid won
	ApplyBid(ctx context.Context, auctionID, expectedBid, amount, bidderID int64, reservationID uuid.UUID) (bool, error)

	// MarkSettled transitions open to settled; reports whether this
	// caller claimed the transition
	MarkSettled(ctx context.Context, auctionID int64, settledAt time.Time) (bool, error)
}

// ReservationRepository defines the interface for currency escrow data access
type ReservationRepository interface {
	// Create inserts a new active reservation
	Create(ctx context.Context, reservation *models.Reservation) error

	// GetByID retrieves a reservation by its ID, nil when absent
	GetByID(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error)

	// MarkReleased transitions active to released; reports whether the
	// transition happened
	MarkReleased(ctx context.Context, reservationID uuid.UUID) (bool, error)

	// MarkSettled transitions active to settled; reports whether the
	// transition happened
	MarkSettled(ctx context.Context, reservationID uuid.UUID) (bool, error)

	// SumActive returns the total amount held across active reservations
	SumActive(ctx context.Context) (int64, error)
}

// SettlementRepository defines the interface for settlement records and
// reward claims
type SettlementRepository interface {
	// CreateRecord appends a settlement record
	CreateRecord(ctx context.Context, record *models.SettlementRecord) error

	// GetRecordByID retrieves a settlement record, nil when absent
	GetRecordByID(ctx context.Context, settlementID uuid.UUID) (*models.SettlementRecord, error)

	// GetRecordByAuction retrieves the settlement record for an auction,
	// nil when absent
	GetRecordByAuction(ctx context.Context, auctionID int64) (*models.SettlementRecord, error)

	// ListUnclaimedByWinner returns unclaimed settlement records for a winner
	ListUnclaimedByWinner(ctx context.Context, winnerID int64) ([]*models.SettlementRecord, error)

	// CreateClaim records the redemption of a settlement record, failing
	// with models.ErrRewardAlreadyClaimed on a second claim
	CreateClaim(ctx context.Context, claim *models.RewardClaim) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns balance history for a specific user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates a new one
	// with the starting balance
	GetOrCreateUser(ctx context.Context, userID int64, username string) (*models.User, error)

	// GetUser retrieves a user, failing with models.ErrUserNotFound
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// LedgerService defines the interface for direct balance adjustments
type LedgerService interface {
	// Credit adds amount to a user's balance
	Credit(ctx context.Context, userID int64, amount int64) error

	// Debit removes amount from a user's balance, failing with
	// models.ErrInsufficientFunds on underflow
	Debit(ctx context.Context, userID int64, amount int64) error

	// GetHistory returns recent balance changes for a user
	GetHistory(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// AuctionService defines the interface for auction operations
type AuctionService interface {
	// CreateAuction lists quantity of an item for auction, withdrawing
	// it from the seller's inventory into escrow
	CreateAuction(ctx context.Context, sellerID, itemID, quantity, startPrice int64, duration time.Duration) (*models.Auction, error)

	// PlaceBid validates and applies a bid, reserving the bidder's funds
	// and refunding the previously leading bidder
	PlaceBid(ctx context.Context, auctionID, bidderID, amount int64) (*models.Auction, error)

	// GetAuction retrieves an auction, failing with models.ErrAuctionNotFound
	GetAuction(ctx context.Context, auctionID int64) (*models.Auction, error)

	// ListOpenAuctions returns all open auctions
	ListOpenAuctions(ctx context.Context) ([]*models.Auction, error)
}

// SweeperService defines the interface for expiry settlement
type SweeperService interface {
	// SweepExpired settles every due auction exactly once and returns
	// the number settled by this call; safe to invoke concurrently
	SweepExpired(ctx context.Context) (int, error)
}

// RewardService defines the interface for settlement reward redemption
type RewardService interface {
	// ListRewards returns a user's unclaimed settlement records
	ListRewards(ctx context.Context, userID int64) ([]*models.SettlementRecord, error)

	// ClaimReward deposits a settled item into the winner's inventory,
	// exactly once per settlement record
	ClaimReward(ctx context.Context, settlementID uuid.UUID, userID int64) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	InventoryRepository() InventoryRepository
	AuctionRepository() AuctionRepository
	ReservationRepository() ReservationRepository
	SettlementRepository() SettlementRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
