package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/avieira/paperbroker/internal/domain"
	"github.com/avieira/paperbroker/internal/usecase/directory"
	"github.com/avieira/paperbroker/internal/usecase/trading"
)

// Console drives the interactive text menu. Exactly one user is logged in
// at a time; the session is the current field, cleared on logout.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	Directory *directory.Service
	Trading   *trading.Service
	Catalog   domain.StockCatalog
	Log       domain.TransactionLog

	current *domain.User
}

// New creates a console reading from in and writing to out
func New(
	in io.Reader,
	out io.Writer,
	directoryService *directory.Service,
	tradingService *trading.Service,
	catalog domain.StockCatalog,
	log domain.TransactionLog,
) *Console {
	return &Console{
		in:        bufio.NewScanner(in),
		out:       out,
		Directory: directoryService,
		Trading:   tradingService,
		Catalog:   catalog,
		Log:       log,
	}
}

// Run loops over the menus until the user exits or input ends
func (c *Console) Run(ctx context.Context) error {
	for {
		var done bool
		if c.current == nil {
			done = c.authMenu(ctx)
		} else {
			done = c.mainMenu(ctx)
		}
		if done {
			return nil
		}
	}
}

func (c *Console) authMenu(ctx context.Context) bool {
	fmt.Fprintln(c.out, "\n===== STOCK TRADING APPLICATION =====")
	fmt.Fprintln(c.out, "1. Login")
	fmt.Fprintln(c.out, "2. Register")
	fmt.Fprintln(c.out, "3. Exit")
	fmt.Fprint(c.out, "Select an option: ")

	choice, ok := c.readInt()
	if !ok {
		return true
	}

	switch choice {
	case 1:
		c.login(ctx)
	case 2:
		c.register(ctx)
	case 3:
		fmt.Fprintln(c.out, "Thank you for using the Stock Trading App. Goodbye!")
		return true
	default:
		fmt.Fprintln(c.out, "Invalid option. Please try again.")
	}
	return false
}

func (c *Console) mainMenu(ctx context.Context) bool {
	fmt.Fprintln(c.out, "\n===== MAIN MENU =====")
	fmt.Fprintf(c.out, "Logged in as: %s\n", c.current.Username)
	fmt.Fprintf(c.out, "Account Balance: %s\n", formatAmount(c.current.Account.Balance()))
	fmt.Fprintln(c.out, "1. View Available Stocks")
	fmt.Fprintln(c.out, "2. View My Portfolio")
	fmt.Fprintln(c.out, "3. Buy Stocks")
	fmt.Fprintln(c.out, "4. Sell Stocks")
	fmt.Fprintln(c.out, "5. View Transaction History")
	fmt.Fprintln(c.out, "6. Logout")
	fmt.Fprint(c.out, "Select an option: ")

	choice, ok := c.readInt()
	if !ok {
		return true
	}

	switch choice {
	case 1:
		c.viewStocks()
	case 2:
		c.viewPortfolio()
	case 3:
		c.buy(ctx)
	case 4:
		c.sell(ctx)
	case 5:
		c.viewHistory()
	case 6:
		c.current = nil
		fmt.Fprintln(c.out, "Logged out successfully.")
	default:
		fmt.Fprintln(c.out, "Invalid option. Please try again.")
	}
	return false
}

func (c *Console) register(ctx context.Context) {
	username, ok := c.prompt("Enter username: ")
	if !ok {
		return
	}
	password, ok := c.prompt("Enter password: ")
	if !ok {
		return
	}

	_, err := c.Directory.Register(ctx, username, password)
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		fmt.Fprintln(c.out, "Username already exists. Please choose a different username.")
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		fmt.Fprintln(c.out, "Registration successful, but could not be saved to disk.")
	case err != nil:
		fmt.Fprintf(c.out, "Registration failed: %v\n", err)
	default:
		fmt.Fprintln(c.out, "Registration successful! You can now login.")
	}
}

func (c *Console) login(ctx context.Context) {
	username, ok := c.prompt("Enter username: ")
	if !ok {
		return
	}
	password, ok := c.prompt("Enter password: ")
	if !ok {
		return
	}

	user, err := c.Directory.Authenticate(ctx, username, password)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid username or password. Please try again.")
		return
	}

	c.current = user
	fmt.Fprintf(c.out, "Login successful! Welcome, %s!\n", username)
}

func (c *Console) viewStocks() {
	fmt.Fprintln(c.out, "\n===== AVAILABLE STOCKS =====")
	fmt.Fprintln(c.out, "SYMBOL | NAME                      | PRICE")
	fmt.Fprintln(c.out, "------------------------------------------------")
	for _, stock := range c.Catalog.List() {
		fmt.Fprintf(c.out, "%-6s | %-25s | %s\n", stock.Symbol, stock.Name, formatAmount(stock.Price))
	}
}

func (c *Console) viewPortfolio() {
	holdings := c.current.Holdings()
	if len(holdings) == 0 {
		fmt.Fprintln(c.out, "\nYou don't own any stocks yet.")
		return
	}

	fmt.Fprintln(c.out, "\n===== YOUR PORTFOLIO =====")
	fmt.Fprintln(c.out, "SYMBOL | NAME                      | QUANTITY | PRICE      | TOTAL VALUE")
	fmt.Fprintln(c.out, "----------------------------------------------------------------------")

	total := decimal.Zero
	for _, stock := range c.Catalog.List() {
		quantity, owned := holdings[stock.Symbol]
		if !owned {
			continue
		}
		value := stock.Price.Mul(decimal.NewFromInt(quantity))
		total = total.Add(value)
		fmt.Fprintf(c.out, "%-6s | %-25s | %-8d | %-10s | %s\n",
			stock.Symbol, stock.Name, quantity, formatAmount(stock.Price), formatAmount(value))
	}

	fmt.Fprintln(c.out, "----------------------------------------------------------------------")
	fmt.Fprintf(c.out, "TOTAL PORTFOLIO VALUE: %s\n", formatAmount(total))
}

func (c *Console) buy(ctx context.Context) {
	c.viewStocks()

	symbol, ok := c.prompt("Enter stock symbol to buy (or 'cancel' to go back): ")
	if !ok || strings.EqualFold(symbol, "cancel") {
		return
	}
	symbol = strings.ToUpper(symbol)

	fmt.Fprint(c.out, "Enter quantity to buy: ")
	quantity, ok := c.readInt()
	if !ok {
		return
	}

	tx, err := c.Trading.Buy(ctx, c.current, symbol, int64(quantity))
	if err != nil {
		c.reportOrderError(err)
		return
	}
	fmt.Fprintf(c.out, "Successfully purchased %d shares of %s for %s\n",
		tx.Quantity, tx.Symbol, formatAmount(tx.TotalAmount))
}

func (c *Console) sell(ctx context.Context) {
	if len(c.current.Holdings()) == 0 {
		fmt.Fprintln(c.out, "\nYou don't own any stocks to sell.")
		return
	}

	c.viewPortfolio()

	symbol, ok := c.prompt("Enter stock symbol to sell (or 'cancel' to go back): ")
	if !ok || strings.EqualFold(symbol, "cancel") {
		return
	}
	symbol = strings.ToUpper(symbol)

	fmt.Fprint(c.out, "Enter quantity to sell: ")
	quantity, ok := c.readInt()
	if !ok {
		return
	}

	tx, err := c.Trading.Sell(ctx, c.current, symbol, int64(quantity))
	if err != nil {
		c.reportOrderError(err)
		return
	}
	fmt.Fprintf(c.out, "Successfully sold %d shares of %s for %s\n",
		tx.Quantity, tx.Symbol, formatAmount(tx.TotalAmount))
}

func (c *Console) viewHistory() {
	history := c.Log.History(c.current.Username)
	if len(history) == 0 {
		fmt.Fprintln(c.out, "\nNo transaction history available.")
		return
	}

	fmt.Fprintln(c.out, "\n===== TRANSACTION HISTORY =====")
	fmt.Fprintln(c.out, "TIMESTAMP            | SYMBOL | TYPE | QTY  | PRICE      | TOTAL")
	fmt.Fprintln(c.out, "--------------------------------------------------------------------")
	for _, tx := range history {
		fmt.Fprintf(c.out, "%s | %-6s | %-4s | %-4d | %-10s | %s\n",
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Symbol, tx.Side, tx.Quantity,
			formatAmount(tx.PricePerShare), formatAmount(tx.TotalAmount))
	}
}

func (c *Console) reportOrderError(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		fmt.Fprintln(c.out, "Quantity must be greater than zero.")
	case errors.Is(err, domain.ErrUnknownSymbol):
		fmt.Fprintln(c.out, "Invalid stock symbol. Please try again.")
	case errors.Is(err, domain.ErrInsufficientFunds):
		fmt.Fprintln(c.out, "Insufficient funds. Transaction cancelled.")
	case errors.Is(err, domain.ErrNotOwned):
		fmt.Fprintln(c.out, "You don't own any shares of this stock.")
	case errors.Is(err, domain.ErrInsufficientShares):
		fmt.Fprintln(c.out, "You don't own that many shares.")
	default:
		fmt.Fprintf(c.out, "Order failed: %v\n", err)
	}
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) readInt() (int, bool) {
	if !c.in.Scan() {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
	if err != nil {
		return -1, true
	}
	return n, true
}

// formatAmount renders a two-decimal rupee amount, e.g. "₹4,252.70"
func formatAmount(d decimal.Decimal) string {
	return money.New(d.Shift(2).Round(0).IntPart(), money.INR).Display()
}
