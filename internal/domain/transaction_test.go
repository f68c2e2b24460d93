package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTransaction(t *testing.T) {
	price := decimal.RequireFromString("425.27")

	tx := NewTransaction("alice", "TTM", 10, price, SideBuy)

	assert.Equal(t, "alice", tx.Username)
	assert.Equal(t, "TTM", tx.Symbol)
	assert.Equal(t, int64(10), tx.Quantity)
	assert.Equal(t, SideBuy, tx.Side)
	assert.True(t, tx.PricePerShare.Equal(price))
	assert.True(t, tx.TotalAmount.Equal(decimal.RequireFromString("4252.70")),
		"total = %s", tx.TotalAmount)
	assert.NotEqual(t, tx.ID.String(), NewTransaction("alice", "TTM", 10, price, SideBuy).ID.String())
	assert.False(t, tx.Timestamp.IsZero())
}
