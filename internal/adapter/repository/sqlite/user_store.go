package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"

	"github.com/avieira/paperbroker/internal/domain"
)

// UserStore implements domain.UserStore on an embedded SQLite file. The
// whole directory is written on every save; there is no incremental log.
type UserStore struct {
	db *sql.DB
}

// userState is the persisted shape of one user
type userState struct {
	Username     string           `json:"username"`
	PasswordHash string           `json:"password_hash"`
	Balance      string           `json:"balance"`
	Holdings     map[string]int64 `json:"holdings"`
}

// NewUserStore opens (or creates) the snapshot database at path
func NewUserStore(path string) (*UserStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrPersistenceUnavailable, path, err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			state    TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", domain.ErrPersistenceUnavailable, err)
	}

	return &UserStore{db: db}, nil
}

// Close closes the underlying database
func (s *UserStore) Close() error {
	return s.db.Close()
}

// LoadAll reads the full username-to-user snapshot
func (s *UserStore) LoadAll(ctx context.Context) (map[string]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username, state FROM users`)
	if err != nil {
		return nil, fmt.Errorf("%w: load snapshot: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer rows.Close()

	users := make(map[string]*domain.User)
	for rows.Next() {
		var username, raw string
		if err := rows.Scan(&username, &raw); err != nil {
			return nil, fmt.Errorf("%w: scan user row: %v", domain.ErrPersistenceUnavailable, err)
		}

		var state userState
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return nil, fmt.Errorf("%w: corrupt record for %q: %v", domain.ErrPersistenceUnavailable, username, err)
		}

		balance, err := decimal.NewFromString(state.Balance)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt balance for %q: %v", domain.ErrPersistenceUnavailable, username, err)
		}

		users[username] = domain.RestoreUser(state.Username, state.PasswordHash, balance, state.Holdings)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load snapshot: %v", domain.ErrPersistenceUnavailable, err)
	}

	return users, nil
}

// SaveAll overwrites the snapshot with the given mapping
func (s *UserStore) SaveAll(ctx context.Context, users map[string]*domain.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin save: %v", domain.ErrPersistenceUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("%w: clear snapshot: %v", domain.ErrPersistenceUnavailable, err)
	}

	for username, user := range users {
		state := userState{
			Username:     user.Username,
			PasswordHash: user.PasswordHash,
			Balance:      user.Account.Balance().String(),
			Holdings:     user.Holdings(),
		}

		raw, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("%w: encode %q: %v", domain.ErrPersistenceUnavailable, username, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (username, state) VALUES (?, ?)`,
			username, string(raw),
		)
		if err != nil {
			return fmt.Errorf("%w: write %q: %v", domain.ErrPersistenceUnavailable, username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit save: %v", domain.ErrPersistenceUnavailable, err)
	}
	return nil
}
