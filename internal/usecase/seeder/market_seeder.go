package seeder

import (
	"github.com/shopspring/decimal"

	"github.com/avieira/paperbroker/internal/domain"
)

// defaultListings is the fixed market every process starts with. Prices are
// static; there is no market data feed.
var defaultListings = []domain.Stock{
	{Symbol: "TTM", Name: "TATAMOTORS", Price: decimal.RequireFromString("425.27")},
	{Symbol: "YSB", Name: "YESBANK", Price: decimal.RequireFromString("185.92")},
	{Symbol: "JSW", Name: "JSWSTEEL", Price: decimal.RequireFromString("175.33")},
	{Symbol: "ASP", Name: "ASIANPAINT", Price: decimal.RequireFromString("187.63")},
	{Symbol: "GAB", Name: "GABRIEL", Price: decimal.RequireFromString("243.64")},
}

// MarketSeeder handles seeding of the default stock listings
type MarketSeeder struct {
	catalog domain.StockCatalog
}

// NewMarketSeeder creates a new MarketSeeder instance
func NewMarketSeeder(catalog domain.StockCatalog) *MarketSeeder {
	return &MarketSeeder{
		catalog: catalog,
	}
}

// Seed inserts every default listing into the catalog
func (s *MarketSeeder) Seed() {
	for _, stock := range defaultListings {
		s.catalog.Add(stock)
	}
}
