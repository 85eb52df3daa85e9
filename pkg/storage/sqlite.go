package storage

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/phoenixvc/mystira-client/pkg/errors"
)

// SQLiteStore is a Store backed by a local SQLite database. A single
// kv table holds all namespaces; the store only sees its own.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
	mu        sync.RWMutex
}

// OpenSQLite opens (and if needed creates) the database at path.
func OpenSQLite(path, namespace string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	s := &SQLiteStore{db: db, namespace: namespace}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initTables creates the kv table with namespace support
func (s *SQLiteStore) initTables() error {
	createTableSQL := `
		CREATE TABLE IF NOT EXISTS kv_storage (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		)
	`

	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create storage table: %w", err)
	}
	return nil
}

// Get returns the value for key
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT value FROM kv_storage WHERE namespace = ? AND key = ?`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, s.namespace, key).Scan(&value)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("key", key)
	}
	if err != nil {
		return nil, errors.NewStorageError(key, "failed to read key", err)
	}
	return value, nil
}

// Put stores a key-value pair, overwriting any existing value
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// REPLACE handles both insert and update
	query := `
		REPLACE INTO kv_storage (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`

	if _, err := s.db.ExecContext(ctx, query, s.namespace, key, value); err != nil {
		return errors.NewStorageError(key, "failed to store key", err)
	}
	return nil
}

// Delete removes a key
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `DELETE FROM kv_storage WHERE namespace = ? AND key = ?`

	if _, err := s.db.ExecContext(ctx, query, s.namespace, key); err != nil {
		return errors.NewStorageError(key, "failed to delete key", err)
	}
	return nil
}

// List returns all keys with the given prefix, sorted
func (s *SQLiteStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT key FROM kv_storage
		WHERE namespace = ? AND key LIKE ? ESCAPE '\'
		ORDER BY key
	`

	rows, err := s.db.QueryContext(ctx, query, s.namespace, escapeLike(prefix)+"%")
	if err != nil {
		return nil, errors.NewStorageError(prefix, "failed to list keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.NewStorageError(prefix, "failed to scan key", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(prefix, "failed to list keys", err)
	}
	return keys, nil
}

// Has reports whether key exists
func (s *SQLiteStore) Has(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT 1 FROM kv_storage WHERE namespace = ? AND key = ? LIMIT 1`

	var one int
	err := s.db.QueryRowContext(ctx, query, s.namespace, key).Scan(&one)
	if stderrors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.NewStorageError(key, "failed to check key", err)
	}
	return true, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// escapeLike escapes LIKE wildcards in a literal prefix
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
