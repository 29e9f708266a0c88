// Package storage persists the task collection as one serialized blob in a
// local key-value store.
//
// # Backends
//
// A Backend is a minimal key-value store: Get returns ErrNotFound for a
// missing key and Set always overwrites the whole value. The available
// backends are:
//
//   - file: one file per key under a directory, replaced atomically
//   - sqlite: a kv table in a local SQLite database
//   - redis: a local Redis instance
//   - memory: an in-process map (tests, dry runs)
//
// # Adapter
//
// Adapter binds a Backend to the collection key and handles JSON encoding.
// Loading tolerates an absent or corrupt blob by returning an empty
// collection; saving reports every failure.
//
// Nothing here coordinates concurrent writers in different processes: the
// last Set wins.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/roonakyadav/pro-track-lite/internal/config"
)

// ErrNotFound is returned by Backend.Get when the key holds no value
var ErrNotFound = errors.New("key not found")

// Backend is a local key-value store
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateKey rejects keys that cannot be used as file names or table keys
func ValidateKey(key string) error {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// Open creates the backend selected by cfg
func Open(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case "", config.BackendFile:
		return NewFileBackend(cfg.ResolvedPath())
	case config.BackendSQLite:
		return NewSQLiteBackend(cfg.ResolvedPath())
	case config.BackendRedis:
		return NewRedisBackend(cfg.Redis)
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
