package domain

import "context"

// StockCatalog defines the set of tradable stocks and their quoted prices.
// Symbols are pre-validated by whoever seeds the catalog.
type StockCatalog interface {
	// Add inserts or overwrites a listing by symbol
	Add(stock Stock)

	// Get retrieves a listing by symbol, ErrUnknownSymbol if absent
	Get(symbol string) (Stock, error)

	// List returns all listings in stable symbol order
	List() []Stock
}

// TransactionLog is the append-only per-user trade history. It is pure
// in-memory bookkeeping and never fails.
type TransactionLog interface {
	// Record appends a trade to the owner's sequence
	Record(tx *Transaction)

	// History returns the owner's trades in chronological order,
	// empty if none exist
	History(username string) []*Transaction
}

// UserStore is the persistence collaborator for the user directory: a
// snapshot store holding the full username-to-user mapping.
type UserStore interface {
	// LoadAll reads the last snapshot. Errors wrap
	// ErrPersistenceUnavailable; callers degrade to an empty directory.
	LoadAll(ctx context.Context) (map[string]*User, error)

	// SaveAll overwrites the snapshot with the given mapping.
	SaveAll(ctx context.Context, users map[string]*User) error
}
