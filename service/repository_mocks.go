package service

import (
	"context"
	"time"

	"auctionhouse/events"
	"auctionhouse/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, userID int64, username string, initialBalance int64) (*models.User, error) {
	args := m.Called(ctx, userID, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) DeductBalance(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetQuantity(ctx context.Context, userID, itemID int64) (int64, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) GetByUser(ctx context.Context, userID int64) ([]*models.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) Withdraw(ctx context.Context, userID, itemID, quantity int64) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) Deposit(ctx context.Context, userID, itemID, quantity int64) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

// MockAuctionRepository is a mock implementation of AuctionRepository
type MockAuctionRepository struct {
	mock.Mock
}

func (m *MockAuctionRepository) Create(ctx context.Context, auction *models.Auction) error {
	args := m.Called(ctx, auction)
	return args.Error(0)
}

func (m *MockAuctionRepository) GetByID(ctx context.Context, auctionID int64) (*models.Auction, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Auction), args.Error(1)
}

func (m *MockAuctionRepository) ListOpen(ctx context.Context) ([]*models.Auction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Auction), args.Error(1)
}

func (m *MockAuctionRepository) ListDue(ctx context.Context, now time.Time) ([]*models.Auction, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Auction), args.Error(1)
}

func (m *MockAuctionRepository) ApplyBid(ctx context.Context, auctionID, expectedBid, amount, bidderID int64, reservationID uuid.UUID) (bool, error) {
	args := m.Called(ctx, auctionID, expectedBid, amount, bidderID, reservationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuctionRepository) MarkSettled(ctx context.Context, auctionID int64, settledAt time.Time) (bool, error) {
	args := m.Called(ctx, auctionID, settledAt)
	return args.Bool(0), args.Error(1)
}

// MockReservationRepository is a mock implementation of ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, reservationID uuid.UUID) (*models.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) MarkReleased(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	args := m.Called(ctx, reservationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) MarkSettled(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	args := m.Called(ctx, reservationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) SumActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettlementRepository is a mock implementation of SettlementRepository
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) CreateRecord(ctx context.Context, record *models.SettlementRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSettlementRepository) GetRecordByID(ctx context.Context, settlementID uuid.UUID) (*models.SettlementRecord, error) {
	args := m.Called(ctx, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SettlementRecord), args.Error(1)
}

func (m *MockSettlementRepository) GetRecordByAuction(ctx context.Context, auctionID int64) (*models.SettlementRecord, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SettlementRecord), args.Error(1)
}

func (m *MockSettlementRepository) ListUnclaimedByWinner(ctx context.Context, winnerID int64) ([]*models.SettlementRecord, error) {
	args := m.Called(ctx, winnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SettlementRecord), args.Error(1)
}

func (m *MockSettlementRepository) CreateClaim(ctx context.Context, claim *models.RewardClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	userRepo        UserRepository
	inventoryRepo   InventoryRepository
	auctionRepo     AuctionRepository
	reservationRepo ReservationRepository
	settlementRepo  SettlementRepository
	historyRepo     BalanceHistoryRepository
	eventBus        EventPublisher
}

// SetRepositories configures the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(
	userRepo UserRepository,
	inventoryRepo InventoryRepository,
	auctionRepo AuctionRepository,
	reservationRepo ReservationRepository,
	settlementRepo SettlementRepository,
	historyRepo BalanceHistoryRepository,
	eventBus EventPublisher,
) {
	m.userRepo = userRepo
	m.inventoryRepo = inventoryRepo
	m.auctionRepo = auctionRepo
	m.reservationRepo = reservationRepo
	m.settlementRepo = settlementRepo
	m.historyRepo = historyRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) InventoryRepository() InventoryRepository {
	return m.inventoryRepo
}

func (m *MockUnitOfWork) AuctionRepository() AuctionRepository {
	return m.auctionRepo
}

func (m *MockUnitOfWork) ReservationRepository() ReservationRepository {
	return m.reservationRepo
}

func (m *MockUnitOfWork) SettlementRepository() SettlementRepository {
	return m.settlementRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.historyRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
