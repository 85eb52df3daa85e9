package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/phoenixvc/mystira-client/pkg/errors"
)

// MemoryStore is an in-memory Store for tests and ephemeral use.
type MemoryStore struct {
	namespace string
	mu        sync.RWMutex
	data      map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory(namespace string) *MemoryStore {
	return &MemoryStore{
		namespace: namespace,
		data:      make(map[string][]byte),
	}
}

// Get returns the value for key
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, errors.NewNotFoundError("key", key)
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Put stores a key-value pair, overwriting any existing value
func (m *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

// Delete removes a key
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// List returns all keys with the given prefix, sorted
func (m *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Has reports whether key exists
func (m *MemoryStore) Has(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}
