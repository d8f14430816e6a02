package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		entry_key TEXT PRIMARY KEY,
		entry_value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)
`

// SQLStore keeps values in a single key/value table. It works against sqlite and postgres.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (and creates if needed) a sqlite database file
func NewSQLiteStore(ctx context.Context, path string) (*SQLStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}
	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return newSQLStore(ctx, db)
}

// NewPostgresStore connects to postgres using a lib/pq connection string
func NewPostgresStore(ctx context.Context, databaseURL string) (*SQLStore, error) {
	if databaseURL == "" {
		return nil, errors.New("database url is required")
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return newSQLStore(ctx, db)
}

// NewSQLStore wraps an existing connection and ensures the schema exists
func NewSQLStore(ctx context.Context, db *sqlx.DB) (*SQLStore, error) {
	return newSQLStore(ctx, db)
}

func newSQLStore(ctx context.Context, db *sqlx.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(`SELECT entry_value FROM kv_store WHERE entry_key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO kv_store (entry_key, entry_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (entry_key) DO UPDATE SET
			entry_value = excluded.entry_value,
			updated_at = excluded.updated_at
	`), key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM kv_store WHERE entry_key = ?`), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys filters again in Go because "_" is a LIKE wildcard and backup keys contain it
func (s *SQLStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var rows []string
	err := s.db.SelectContext(ctx, &rows,
		s.db.Rebind(`SELECT entry_key FROM kv_store WHERE entry_key LIKE ? ORDER BY entry_key`), prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	keys := rows[:0]
	for _, k := range rows {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
