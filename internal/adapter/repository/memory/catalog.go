package memory

import (
	"sort"
	"sync"

	"github.com/avieira/paperbroker/internal/domain"
)

// Catalog implements domain.StockCatalog in memory
type Catalog struct {
	mu     sync.RWMutex
	stocks map[string]domain.Stock
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{stocks: make(map[string]domain.Stock)}
}

// Add inserts or overwrites a listing by symbol
func (c *Catalog) Add(stock domain.Stock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stocks[stock.Symbol] = stock
}

// Get retrieves a listing by symbol
func (c *Catalog) Get(symbol string) (domain.Stock, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stock, ok := c.stocks[symbol]
	if !ok {
		return domain.Stock{}, domain.ErrUnknownSymbol
	}
	return stock, nil
}

// List returns all listings sorted by symbol, so repeated calls without
// intervening mutation return identical sequences.
func (c *Catalog) List() []domain.Stock {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Stock, 0, len(c.stocks))
	for _, stock := range c.stocks {
		out = append(out, stock)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
