package testutil

import (
	"time"

	"auctionhouse/models"

	"github.com/google/uuid"
)

// CreateTestAuction creates an open auction with default values expiring
// an hour from now
func CreateTestAuction(sellerID, itemID int64) *models.Auction {
	return &models.Auction{
		SellerID:   sellerID,
		ItemID:     itemID,
		Quantity:   1,
		StartPrice: 100,
		CurrentBid: 100,
		Status:     models.AuctionStatusOpen,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

// CreateTestAuctionExpiringAt creates an open auction with a specific expiry
func CreateTestAuctionExpiringAt(sellerID, itemID int64, expiresAt time.Time) *models.Auction {
	auction := CreateTestAuction(sellerID, itemID)
	auction.ExpiresAt = expiresAt
	return auction
}

// CreateTestReservation creates an active reservation with default values
func CreateTestReservation(userID, auctionID, amount int64) *models.Reservation {
	return &models.Reservation{
		ID:        uuid.New(),
		UserID:    userID,
		AuctionID: auctionID,
		Amount:    amount,
		Status:    models.ReservationStatusActive,
	}
}

// CreateTestSettlementRecord creates a settlement record with default values
func CreateTestSettlementRecord(auctionID, winnerID, itemID, quantity int64) *models.SettlementRecord {
	return &models.SettlementRecord{
		ID:        uuid.New(),
		AuctionID: auctionID,
		WinnerID:  winnerID,
		ItemID:    itemID,
		Quantity:  quantity,
	}
}

// CreateTestBalanceHistory creates a balance history entry with default values
func CreateTestBalanceHistory(userID int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   100000,
		BalanceAfter:    90000,
		ChangeAmount:    -10000,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}
