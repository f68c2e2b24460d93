package http

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avieira/paperbroker/internal/domain"
)

// userContextKey is where requireSession stores the resolved user
const userContextKey = "user"

// sessionManager maps opaque bearer tokens to usernames. Tokens live for
// the process lifetime or until logout.
type sessionManager struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func newSessionManager() *sessionManager {
	return &sessionManager{tokens: make(map[string]string)}
}

// Issue creates a fresh token for username
func (m *sessionManager) Issue(username string) string {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = username
	return token
}

// Resolve returns the username a token was issued to
func (m *sessionManager) Resolve(token string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	username, ok := m.tokens[token]
	return username, ok
}

// Revoke invalidates a token
func (m *sessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
}

// requireSession validates the bearer token from the Authorization header
// and stores the authenticated user in the request context. Missing or
// invalid tokens fail with 401.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}

		username, ok := s.sessions.Resolve(token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		s.mu.Lock()
		user, exists := s.Directory.Lookup(username)
		s.mu.Unlock()
		if !exists {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// currentUser retrieves the user stored by requireSession
func currentUser(c echo.Context) *domain.User {
	return c.Get(userContextKey).(*domain.User)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}
