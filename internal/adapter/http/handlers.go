package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/avieira/paperbroker/internal/domain"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type orderRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
}

type stockResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}

type transactionResponse struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	Quantity      int64     `json:"quantity"`
	PricePerShare string    `json:"price_per_share"`
	TotalAmount   string    `json:"total_amount"`
	Side          string    `json:"side"`
	Timestamp     time.Time `json:"timestamp"`
}

type positionResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price"`
	Value    string `json:"value"`
}

type portfolioResponse struct {
	Positions  []positionResponse `json:"positions"`
	TotalValue string             `json:"total_value"`
}

// register handles POST /register
func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	s.mu.Lock()
	user, err := s.Directory.Register(c.Request().Context(), req.Username, req.Password)
	s.mu.Unlock()

	// A failed snapshot write does not roll back the registration: surface
	// it as a warning next to the created user.
	if err != nil && user != nil && errors.Is(err, domain.ErrPersistenceUnavailable) {
		return c.JSON(http.StatusCreated, map[string]interface{}{
			"username": user.Username,
			"balance":  user.Account.Balance().String(),
			"warning":  "registration not persisted: " + err.Error(),
		})
	}
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"username": user.Username,
		"balance":  user.Account.Balance().String(),
	})
}

// login handles POST /login
func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	s.mu.Lock()
	user, err := s.Directory.Authenticate(c.Request().Context(), req.Username, req.Password)
	s.mu.Unlock()
	if err != nil {
		return mapError(err)
	}

	token := s.sessions.Issue(user.Username)
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// logout handles POST /logout
func (s *Server) logout(c echo.Context) error {
	token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	s.sessions.Revoke(token)
	return c.NoContent(http.StatusNoContent)
}

// listStocks handles GET /stocks
func (s *Server) listStocks(c echo.Context) error {
	stocks := s.Catalog.List()
	out := make([]stockResponse, 0, len(stocks))
	for _, stock := range stocks {
		out = append(out, stockResponse{
			Symbol: stock.Symbol,
			Name:   stock.Name,
			Price:  stock.Price.String(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// getStock handles GET /stocks/:symbol
func (s *Server) getStock(c echo.Context) error {
	stock, err := s.Catalog.Get(c.Param("symbol"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, stockResponse{
		Symbol: stock.Symbol,
		Name:   stock.Name,
		Price:  stock.Price.String(),
	})
}

// balance handles GET /balance
func (s *Server) balance(c echo.Context) error {
	user := currentUser(c)

	s.mu.Lock()
	balance := user.Account.Balance()
	s.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]string{"balance": balance.String()})
}

// portfolio handles GET /portfolio, valuing every position at the current
// catalog price
func (s *Server) portfolio(c echo.Context) error {
	user := currentUser(c)

	s.mu.Lock()
	holdings := user.Holdings()
	s.mu.Unlock()

	total := decimal.Zero
	positions := make([]positionResponse, 0, len(holdings))
	for _, stock := range s.Catalog.List() {
		quantity, owned := holdings[stock.Symbol]
		if !owned {
			continue
		}
		value := stock.Price.Mul(decimal.NewFromInt(quantity))
		total = total.Add(value)
		positions = append(positions, positionResponse{
			Symbol:   stock.Symbol,
			Name:     stock.Name,
			Quantity: quantity,
			Price:    stock.Price.String(),
			Value:    value.String(),
		})
	}

	return c.JSON(http.StatusOK, portfolioResponse{
		Positions:  positions,
		TotalValue: total.String(),
	})
}

// transactions handles GET /transactions
func (s *Server) transactions(c echo.Context) error {
	user := currentUser(c)

	s.mu.Lock()
	history := s.Log.History(user.Username)
	s.mu.Unlock()

	out := make([]transactionResponse, 0, len(history))
	for _, tx := range history {
		out = append(out, newTransactionResponse(tx))
	}
	return c.JSON(http.StatusOK, out)
}

// buy handles POST /orders/buy
func (s *Server) buy(c echo.Context) error {
	return s.placeOrder(c, s.Trading.Buy)
}

// sell handles POST /orders/sell
func (s *Server) sell(c echo.Context) error {
	return s.placeOrder(c, s.Trading.Sell)
}

func (s *Server) placeOrder(
	c echo.Context,
	execute func(ctx context.Context, user *domain.User, symbol string, quantity int64) (*domain.Transaction, error),
) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user := currentUser(c)

	s.mu.Lock()
	tx, err := execute(c.Request().Context(), user, req.Symbol, req.Quantity)
	s.mu.Unlock()
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, newTransactionResponse(tx))
}

func newTransactionResponse(tx *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID.String(),
		Symbol:        tx.Symbol,
		Quantity:      tx.Quantity,
		PricePerShare: tx.PricePerShare.String(),
		TotalAmount:   tx.TotalAmount.String(),
		Side:          string(tx.Side),
		Timestamp:     tx.Timestamp,
	}
}

// mapError converts domain errors to HTTP status errors
func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownSymbol):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrNotOwned),
		errors.Is(err, domain.ErrInsufficientShares):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrDuplicateUsername):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAuthFailed):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
