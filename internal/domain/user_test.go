package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUser_AdjustHolding(t *testing.T) {
	tests := []struct {
		name     string
		initial  map[string]int64
		symbol   string
		delta    int64
		want     int64
		wantKept bool
	}{
		{
			name:     "First buy creates the entry",
			initial:  nil,
			symbol:   "TTM",
			delta:    10,
			want:     10,
			wantKept: true,
		},
		{
			name:     "Subsequent buy accumulates",
			initial:  map[string]int64{"TTM": 10},
			symbol:   "TTM",
			delta:    5,
			want:     15,
			wantKept: true,
		},
		{
			name:     "Partial sell decrements",
			initial:  map[string]int64{"TTM": 10},
			symbol:   "TTM",
			delta:    -4,
			want:     6,
			wantKept: true,
		},
		{
			name:     "Full sell removes the entry",
			initial:  map[string]int64{"TTM": 10},
			symbol:   "TTM",
			delta:    -10,
			want:     0,
			wantKept: false,
		},
		{
			name:     "Over-sell clamps to removal, never negative",
			initial:  map[string]int64{"TTM": 10},
			symbol:   "TTM",
			delta:    -25,
			want:     0,
			wantKept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := RestoreUser("alice", "hash", decimal.Zero, tt.initial)

			user.AdjustHolding(tt.symbol, tt.delta)

			assert.Equal(t, tt.want, user.Holding(tt.symbol))
			_, kept := user.Holdings()[tt.symbol]
			assert.Equal(t, tt.wantKept, kept)
		})
	}
}

func TestUser_Holdings_ReturnsCopy(t *testing.T) {
	user := RestoreUser("alice", "hash", decimal.Zero, map[string]int64{"TTM": 10})

	holdings := user.Holdings()
	holdings["TTM"] = 999

	assert.Equal(t, int64(10), user.Holding("TTM"))
}

func TestRestoreUser_DropsNonPositiveHoldings(t *testing.T) {
	user := RestoreUser("alice", "hash", decimal.Zero, map[string]int64{
		"TTM": 10,
		"YSB": 0,
		"JSW": -3,
	})

	assert.Equal(t, map[string]int64{"TTM": 10}, user.Holdings())
}
