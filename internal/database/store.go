package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// Store is the persistence boundary: a string key-value store. The
// pipeline uses it for the single "last-date" watermark key.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetValue returns the value for key; ok is false when the key is absent.
	GetValue(ctx context.Context, key string) (value string, ok bool, err error)

	// SetValue inserts or replaces the value for key.
	SetValue(ctx context.Context, key, value string) error
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by sqlx over the kv table.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM kv WHERE key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get value for %q: %w", key, err)
	}
	return value, true, nil
}

func (s *sqlxStore) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set value for %q: %w", key, err)
	}
	s.logger.Debug("stored value", "key", key, "value", value)
	return nil
}
