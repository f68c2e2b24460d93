package domain

import "errors"

// Error taxonomy for trading and directory operations. Every failure leaves
// state untouched: validation runs before any mutation.
var (
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrUnknownSymbol          = errors.New("unknown stock symbol")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrNotOwned               = errors.New("no holding for symbol")
	ErrInsufficientShares     = errors.New("insufficient shares held")
	ErrDuplicateUsername      = errors.New("username already exists")
	ErrAuthFailed             = errors.New("invalid username or password")
	ErrPersistenceUnavailable = errors.New("user snapshot store unavailable")
)
