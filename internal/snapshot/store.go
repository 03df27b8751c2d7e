// Package snapshot persists the guest ledger to durable local storage.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/citrushq/citrus-ledger/internal/model"
)

// Namespaced keys. The guest ledger lives under a single key as one JSON
// blob; the currency preference is persisted independent of identity state.
const (
	guestLedgerKey = "citrus/guest_ledger"
	currencyKey    = "citrus/currency"
)

// DefaultCurrency is used until the user picks a display currency.
const DefaultCurrency = "USD"

// Store implements service.SnapshotStore on a local SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the local snapshot database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping snapshot database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the last-persisted guest snapshot, or nil if none exists.
func (s *Store) Load(ctx context.Context) (*model.Snapshot, error) {
	raw, err := s.get(ctx, guestLedgerKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode guest snapshot: %w", err)
	}
	return &snap, nil
}

// Save overwrites the persisted guest snapshot synchronously.
func (s *Store) Save(ctx context.Context, snap model.Snapshot) error {
	encoded, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode guest snapshot: %w", err)
	}
	return s.put(ctx, guestLedgerKey, string(encoded))
}

// Clear removes the persisted guest snapshot.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, guestLedgerKey); err != nil {
		return fmt.Errorf("failed to clear guest snapshot: %w", err)
	}
	return nil
}

// Currency returns the preferred display currency code.
func (s *Store) Currency(ctx context.Context) (string, error) {
	code, err := s.get(ctx, currencyKey)
	if err != nil {
		return "", err
	}
	if code == "" {
		return DefaultCurrency, nil
	}
	return code, nil
}

// SetCurrency persists the preferred display currency code.
func (s *Store) SetCurrency(ctx context.Context, code string) error {
	return s.put(ctx, currencyKey, code)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
