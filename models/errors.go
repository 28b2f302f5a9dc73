package models

import "errors"

// Domain error kinds. All are recoverable and reported to the caller
// with no partial state change; services wrap them with context.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAuctionNotFound      = errors.New("auction not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientQuantity = errors.New("insufficient item quantity")
	ErrBidTooLow            = errors.New("bid does not exceed current bid")
	ErrAuctionExpired       = errors.New("auction has expired")
	ErrAuctionSettled       = errors.New("auction is already settled")
	ErrBidConflict          = errors.New("bid lost a concurrent update race")
	ErrRewardNotFound       = errors.New("reward not found")
	ErrRewardAlreadyClaimed = errors.New("reward already claimed")
)
