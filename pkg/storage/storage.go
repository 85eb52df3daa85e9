// Package storage provides the local key-value store backing the
// client: cached content, drafts, and anything the web app would keep
// in IndexedDB. Stores are namespaced so multiple apps can share one
// database file.
package storage

import (
	"context"

	"github.com/phoenixvc/mystira-client/pkg/config"
	"github.com/phoenixvc/mystira-client/pkg/errors"
)

// Store is the local storage abstraction. Operations are individual
// statements with no cross-operation transaction semantics.
type Store interface {
	// Get returns the value for key. Missing keys return ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, overwriting any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Has reports whether key exists.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases any underlying resources.
	Close() error
}

// Open creates a store from configuration.
func Open(cfg config.StorageConfig) (Store, error) {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "mystira"
	}

	switch cfg.Driver {
	case "sqlite":
		return OpenSQLite(cfg.Path, namespace)
	case "memory":
		return NewMemory(namespace), nil
	default:
		return nil, errors.Newf("unknown storage driver %q", cfg.Driver)
	}
}
