package domain

import "github.com/shopspring/decimal"

// User represents a registered trader: credentials, cash account and
// portfolio. Passwords are stored only as bcrypt hashes.
type User struct {
	Username     string
	PasswordHash string
	Account      *Account

	// portfolio maps symbol to held quantity. Entries are always positive;
	// a holding that drops to zero is removed, never stored.
	portfolio map[string]int64
}

// NewUser creates a user with the given opening balance and an empty
// portfolio.
func NewUser(username, passwordHash string, openingBalance decimal.Decimal) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Account:      NewAccount(openingBalance),
		portfolio:    make(map[string]int64),
	}
}

// RestoreUser rebuilds a user from a persisted snapshot. Non-positive
// holdings in the snapshot are dropped.
func RestoreUser(username, passwordHash string, balance decimal.Decimal, holdings map[string]int64) *User {
	u := NewUser(username, passwordHash, balance)
	for symbol, quantity := range holdings {
		if quantity > 0 {
			u.portfolio[symbol] = quantity
		}
	}
	return u
}

// AdjustHolding adds delta to the held quantity for symbol, creating the
// entry on first buy. A resulting quantity of zero or below removes the
// entry entirely, so a full sell leaves no trace of the symbol.
func (u *User) AdjustHolding(symbol string, delta int64) {
	quantity := u.portfolio[symbol] + delta
	if quantity <= 0 {
		delete(u.portfolio, symbol)
		return
	}
	u.portfolio[symbol] = quantity
}

// Holding returns the held quantity for symbol, zero if absent.
func (u *User) Holding(symbol string) int64 {
	return u.portfolio[symbol]
}

// Holdings returns a copy of the portfolio. Only positive entries exist.
func (u *User) Holdings() map[string]int64 {
	out := make(map[string]int64, len(u.portfolio))
	for symbol, quantity := range u.portfolio {
		out[symbol] = quantity
	}
	return out
}
