package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/avieira/paperbroker/internal/domain"
)

// openingBalance is the cash every new user starts with.
var openingBalance = decimal.RequireFromString("10000.00")

// Service is the user directory: it owns the in-memory username-to-user
// mapping and delegates durability to a snapshot store. The in-memory
// mapping is the system of record while the process runs; the store only
// holds the snapshot taken at the last successful registration.
type Service struct {
	store domain.UserStore
	users map[string]*domain.User
}

// NewService creates a directory backed by the given snapshot store
func NewService(store domain.UserStore) *Service {
	return &Service{
		store: store,
		users: make(map[string]*domain.User),
	}
}

// Load populates the directory from the last snapshot. A missing or corrupt
// snapshot degrades to an empty directory; the returned error is for the
// caller to log, not to abort on.
func (s *Service) Load(ctx context.Context) error {
	users, err := s.store.LoadAll(ctx)
	if err != nil {
		s.users = make(map[string]*domain.User)
		return err
	}
	s.users = users
	return nil
}

// Register creates a new user with the fixed opening balance and an empty
// portfolio, then snapshots the directory. When the snapshot write fails
// the in-memory registration stands: the created user is returned together
// with an error wrapping domain.ErrPersistenceUnavailable so callers can
// surface the warning.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if _, exists := s.users[username]; exists {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(username, string(hash), openingBalance)
	s.users[username] = user

	if err := s.store.SaveAll(ctx, s.users); err != nil {
		return user, err
	}
	return user, nil
}

// Authenticate resolves a login attempt. Unknown usernames and wrong
// passwords fail identically with domain.ErrAuthFailed, so callers cannot
// enumerate registered usernames.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, exists := s.users[username]
	if !exists {
		return nil, domain.ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrAuthFailed
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}

	return user, nil
}

// Lookup returns the registered user for username, if any
func (s *Service) Lookup(username string) (*domain.User, bool) {
	user, exists := s.users[username]
	return user, exists
}
