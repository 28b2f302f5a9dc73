package events

import (
	"context"
	"sync"

	"auctionhouse/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeUserCreated    EventType = "user_created"
	EventTypeAuctionCreated EventType = "auction_created"
	EventTypeBidPlaced      EventType = "bid_placed"
	EventTypeBidRefunded    EventType = "bid_refunded"
	EventTypeAuctionSettled EventType = "auction_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	OldBalance      int64
	NewBalance      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID         int64
	Username       string
	InitialBalance int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// AuctionCreatedEvent represents a new auction listing
type AuctionCreatedEvent struct {
	AuctionID  int64
	SellerID   int64
	ItemID     int64
	Quantity   int64
	StartPrice int64
}

func (e AuctionCreatedEvent) Type() EventType {
	return EventTypeAuctionCreated
}

// BidPlacedEvent represents an accepted bid
type BidPlacedEvent struct {
	AuctionID int64
	BidderID  int64
	Amount    int64
}

func (e BidPlacedEvent) Type() EventType {
	return EventTypeBidPlaced
}

// BidRefundedEvent represents an outbid bidder's escrow being returned
type BidRefundedEvent struct {
	AuctionID int64
	BidderID  int64
	Amount    int64
}

func (e BidRefundedEvent) Type() EventType {
	return EventTypeBidRefunded
}

// AuctionSettledEvent represents the terminal settlement of an auction
type AuctionSettledEvent struct {
	AuctionID int64
	WinnerID  int64
	ItemID    int64
	Quantity  int64
	FinalBid  int64
}

func (e AuctionSettledEvent) Type() EventType {
	return EventTypeAuctionSettled
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Use background context for event emission to avoid issues with
	// transaction context expiration
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
