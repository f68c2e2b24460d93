package trading

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avieira/paperbroker/internal/domain"
)

// Service executes market orders against the catalog's current quoted
// price. Every order fully executes at that price or is fully rejected:
// there is no order book, no slippage and no partial fills.
//
// Validation always precedes mutation, so a rejected order leaves the
// user's balance, portfolio and history untouched.
type Service struct {
	Catalog domain.StockCatalog
	Log     domain.TransactionLog
}

// NewService creates a new trading Service instance
func NewService(catalog domain.StockCatalog, log domain.TransactionLog) *Service {
	return &Service{
		Catalog: catalog,
		Log:     log,
	}
}

// Buy purchases quantity shares of symbol for user at the current catalog
// price, debiting the cash account and returning the executed trade.
func (s *Service) Buy(ctx context.Context, user *domain.User, symbol string, quantity int64) (*domain.Transaction, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	stock, err := s.Catalog.Get(symbol)
	if err != nil {
		return nil, err
	}

	cost := stock.Price.Mul(decimal.NewFromInt(quantity))

	// Withdraw is the sole admission gate: it refuses the whole order
	// when the balance does not cover the full cost.
	if !user.Account.Withdraw(cost) {
		return nil, domain.ErrInsufficientFunds
	}

	user.AdjustHolding(symbol, quantity)

	tx := domain.NewTransaction(user.Username, symbol, quantity, stock.Price, domain.SideBuy)
	s.Log.Record(tx)

	return tx, nil
}

// Sell liquidates quantity shares of symbol for user at the current catalog
// price, not the purchase price. There is no cost-basis tracking.
func (s *Service) Sell(ctx context.Context, user *domain.User, symbol string, quantity int64) (*domain.Transaction, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	held := user.Holding(symbol)
	if held == 0 {
		return nil, domain.ErrNotOwned
	}
	if quantity > held {
		return nil, domain.ErrInsufficientShares
	}

	stock, err := s.Catalog.Get(symbol)
	if err != nil {
		return nil, err
	}

	proceeds := stock.Price.Mul(decimal.NewFromInt(quantity))

	user.Account.Deposit(proceeds)
	user.AdjustHolding(symbol, -quantity)

	tx := domain.NewTransaction(user.Username, symbol, quantity, stock.Price, domain.SideSell)
	s.Log.Record(tx)

	return tx, nil
}
