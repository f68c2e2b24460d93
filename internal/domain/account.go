package domain

import "github.com/shopspring/decimal"

// Account holds a user's cash balance. The balance never goes negative:
// Withdraw is the sole admission gate for buy orders and refuses any amount
// above the current balance.
type Account struct {
	balance decimal.Decimal
}

// NewAccount creates an account with the given opening balance.
func NewAccount(openingBalance decimal.Decimal) *Account {
	return &Account{balance: openingBalance}
}

// Balance returns the current cash balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Deposit credits the account. Amounts are assumed non-negative; deposits
// never fail.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

// Withdraw debits the account if the full amount is covered. It returns
// false and leaves the balance unchanged otherwise.
func (a *Account) Withdraw(amount decimal.Decimal) bool {
	if amount.GreaterThan(a.balance) {
		return false
	}
	a.balance = a.balance.Sub(amount)
	return true
}
