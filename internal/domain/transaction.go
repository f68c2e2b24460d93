package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side represents the direction of an executed trade
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Transaction is an immutable record of one executed trade. Records are
// appended to a per-user chronological log and never removed.
type Transaction struct {
	ID            uuid.UUID
	Username      string
	Symbol        string
	Quantity      int64
	PricePerShare decimal.Decimal
	TotalAmount   decimal.Decimal
	Side          Side
	Timestamp     time.Time
}

// NewTransaction builds a trade record at the current time.
// TotalAmount is always Quantity x PricePerShare.
func NewTransaction(username, symbol string, quantity int64, pricePerShare decimal.Decimal, side Side) *Transaction {
	return &Transaction{
		ID:            uuid.New(),
		Username:      username,
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: pricePerShare,
		TotalAmount:   pricePerShare.Mul(decimal.NewFromInt(quantity)),
		Side:          side,
		Timestamp:     time.Now(),
	}
}
