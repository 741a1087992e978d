package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// kvSchema is portable across PostgreSQL and SQLite.
const kvSchema = `CREATE TABLE IF NOT EXISTS kv_entries (
    entry_key   TEXT PRIMARY KEY,
    entry_value TEXT NOT NULL,
    updated_at  TIMESTAMP NOT NULL
)`

// SQLKeyValueStore keeps values in the kv_entries table. Queries are written
// with '?' and rebound for the driver, so one implementation serves lib/pq and go-sqlite3.
type SQLKeyValueStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLKeyValueStore constructs the store. Call EnsureSchema before first use.
func NewSQLKeyValueStore(db *sqlx.DB) *SQLKeyValueStore {
	return &SQLKeyValueStore{db: db, now: time.Now}
}

// EnsureSchema creates the kv_entries table when missing.
func (s *SQLKeyValueStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, kvSchema); err != nil {
		return fmt.Errorf("create kv_entries: %w", err)
	}
	return nil
}

func (s *SQLKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	query := s.db.Rebind(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)
	var value string
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("get kv entry %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLKeyValueStore) Set(ctx context.Context, key, value string) error {
	query := s.db.Rebind(`INSERT INTO kv_entries (entry_key, entry_value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (entry_key)
DO UPDATE SET entry_value = EXCLUDED.entry_value, updated_at = EXCLUDED.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, key, value, s.now().UTC()); err != nil {
		return fmt.Errorf("upsert kv entry %s: %w", key, err)
	}
	return nil
}

func (s *SQLKeyValueStore) Delete(ctx context.Context, key string) error {
	query := s.db.Rebind(`DELETE FROM kv_entries WHERE entry_key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete kv entry %s: %w", key, err)
	}
	return nil
}

func (s *SQLKeyValueStore) Close() error {
	return s.db.Close()
}
