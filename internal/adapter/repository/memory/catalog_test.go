package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avieira/paperbroker/internal/domain"
)

func TestCatalog_AddAndGet(t *testing.T) {
	catalog := NewCatalog()

	catalog.Add(domain.Stock{Symbol: "TTM", Name: "TATAMOTORS", Price: decimal.RequireFromString("425.27")})

	stock, err := catalog.Get("TTM")
	require.NoError(t, err)
	assert.Equal(t, "TATAMOTORS", stock.Name)
}

func TestCatalog_AddOverwritesBySymbol(t *testing.T) {
	catalog := NewCatalog()

	catalog.Add(domain.Stock{Symbol: "TTM", Name: "TATAMOTORS", Price: decimal.RequireFromString("425.27")})
	catalog.Add(domain.Stock{Symbol: "TTM", Name: "TATAMOTORS", Price: decimal.RequireFromString("430.00")})

	stock, err := catalog.Get("TTM")
	require.NoError(t, err)
	assert.True(t, stock.Price.Equal(decimal.RequireFromString("430.00")))
	assert.Len(t, catalog.List(), 1)
}

func TestCatalog_GetUnknownSymbol(t *testing.T) {
	catalog := NewCatalog()

	_, err := catalog.Get("NOPE")

	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestCatalog_ListIsStable(t *testing.T) {
	catalog := NewCatalog()
	catalog.Add(domain.Stock{Symbol: "YSB", Name: "YESBANK", Price: decimal.RequireFromString("185.92")})
	catalog.Add(domain.Stock{Symbol: "ASP", Name: "ASIANPAINT", Price: decimal.RequireFromString("187.63")})
	catalog.Add(domain.Stock{Symbol: "TTM", Name: "TATAMOTORS", Price: decimal.RequireFromString("425.27")})

	first := catalog.List()
	second := catalog.List()

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, "ASP", first[0].Symbol)
	assert.Equal(t, "TTM", first[1].Symbol)
	assert.Equal(t, "YSB", first[2].Symbol)
}
