// Package storage is the key/value persistence port the planner saves its state through.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Load when the key has never been saved
var ErrNotFound = errors.New("storage: key not found")

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Store persists opaque values by key
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys returns every key starting with prefix in ascending order
	Keys(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend
type Options struct {
	Backend     string
	SQLitePath  string
	DatabaseURL string
	RedisURL    string
	// RedisPrefix namespaces keys in a shared redis database
	RedisPrefix string
}

// Open connects the configured backend
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(opts.Backend) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		store, err = NewSQLiteStore(ctx, opts.SQLitePath)
	case BackendPostgres:
		store, err = NewPostgresStore(ctx, opts.DatabaseURL)
	case BackendRedis:
		store, err = NewRedisStore(ctx, opts.RedisURL, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
