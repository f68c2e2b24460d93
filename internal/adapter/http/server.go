package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avieira/paperbroker/internal/domain"
	"github.com/avieira/paperbroker/internal/usecase/directory"
	"github.com/avieira/paperbroker/internal/usecase/trading"
)

// Server exposes the simulator over HTTP. Handlers that touch a user's
// account, portfolio or the directory run under one mutex: buy/sell must
// execute price lookup, cash movement and log append as a single critical
// section, and the core is written for one active session.
type Server struct {
	echo *echo.Echo

	Directory *directory.Service
	Trading   *trading.Service
	Catalog   domain.StockCatalog
	Log       domain.TransactionLog

	mu       sync.Mutex
	sessions *sessionManager
}

// NewServer creates a new HTTP server instance and registers all routes
func NewServer(
	directoryService *directory.Service,
	tradingService *trading.Service,
	catalog domain.StockCatalog,
	log domain.TransactionLog,
) *Server {
	s := &Server{
		echo:      echo.New(),
		Directory: directoryService,
		Trading:   tradingService,
		Catalog:   catalog,
		Log:       log,
		sessions:  newSessionManager(),
	}

	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())

	s.echo.POST("/register", s.register)
	s.echo.POST("/login", s.login)
	s.echo.GET("/stocks", s.listStocks)
	s.echo.GET("/stocks/:symbol", s.getStock)

	authed := s.echo.Group("", s.requireSession)
	authed.POST("/logout", s.logout)
	authed.GET("/balance", s.balance)
	authed.GET("/portfolio", s.portfolio)
	authed.GET("/transactions", s.transactions)
	authed.POST("/orders/buy", s.buy)
	authed.POST("/orders/sell", s.sell)

	return s
}

// Start listens on addr and serves until Shutdown
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler returns the underlying http.Handler, for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}
