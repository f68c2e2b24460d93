package domain

import "github.com/shopspring/decimal"

// Stock represents a tradable listing in the market catalog
type Stock struct {
	Symbol string
	Name   string
	Price  decimal.Decimal
}

// SetPrice updates the quoted price. Symbols and names are fixed once
// listed; the price is the only mutable field.
func (s *Stock) SetPrice(price decimal.Decimal) {
	s.Price = price
}
