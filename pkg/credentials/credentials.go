// Package credentials persists auth tokens obtained from the
// passwordless flow, keyed by API endpoint, under ~/.mystira.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Credentials represents the stored tokens for a specific API endpoint
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Email        string    `json:"email,omitempty"`
	AccountID    string    `json:"account_id,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	IssuedAt     time.Time `json:"issued_at"`
	LastUsedAt   time.Time `json:"last_used_at,omitempty"`
}

// Store manages credentials for multiple API endpoints
type Store struct {
	Endpoints map[string]*Credentials `json:"endpoints"`
	Version   string                  `json:"version"`
}

// DeviceID returns the stable per-install device identifier, creating
// one on first use. It lives next to the credentials file.
func DeviceID() (string, error) {
	credPath, err := Path()
	if err != nil {
		return "", err
	}
	idPath := filepath.Join(filepath.Dir(credPath), "device-id")

	if data, err := os.ReadFile(idPath); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}

	id := uuid.NewString()
	if err := os.WriteFile(idPath, []byte(id+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to write device id: %w", err)
	}
	return id, nil
}

// Path returns the path to the credentials file
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".mystira")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create .mystira directory: %w", err)
	}

	return filepath.Join(dir, "credentials.json"), nil
}

// Load loads credentials from ~/.mystira/credentials.json
func Load() (*Store, error) {
	credPath, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFrom(credPath)
}

func loadFrom(credPath string) (*Store, error) {
	if _, err := os.Stat(credPath); os.IsNotExist(err) {
		return &Store{
			Endpoints: make(map[string]*Credentials),
			Version:   "1.0",
		}, nil
	}

	data, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if store.Endpoints == nil {
		store.Endpoints = make(map[string]*Credentials)
	}
	if store.Version == "" {
		store.Version = "1.0"
	}

	return &store, nil
}

// Save writes the store to ~/.mystira/credentials.json
func (store *Store) Save() error {
	credPath, err := Path()
	if err != nil {
		return err
	}
	return store.saveTo(credPath)
}

func (store *Store) saveTo(credPath string) error {
	if store.Version == "" {
		store.Version = "1.0"
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// Readable only by owner
	if err := os.WriteFile(credPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// ForEndpoint returns credentials for a specific API endpoint URL.
// Expired credentials are treated as absent.
func (store *Store) ForEndpoint(endpoint string) (*Credentials, bool) {
	creds, exists := store.Endpoints[endpoint]
	if !exists || creds == nil {
		return nil, false
	}

	if !creds.ExpiresAt.IsZero() && time.Now().After(creds.ExpiresAt) {
		return nil, false
	}

	return creds, true
}

// SetForEndpoint stores credentials for a specific API endpoint URL
func (store *Store) SetForEndpoint(endpoint string, creds *Credentials) {
	if store.Endpoints == nil {
		store.Endpoints = make(map[string]*Credentials)
	}

	creds.LastUsedAt = time.Now()
	store.Endpoints[endpoint] = creds
}

// RemoveForEndpoint removes credentials for a specific API endpoint URL
func (store *Store) RemoveForEndpoint(endpoint string) {
	if store.Endpoints != nil {
		delete(store.Endpoints, endpoint)
	}
}

// Clear removes all stored credentials
func (store *Store) Clear() {
	store.Endpoints = make(map[string]*Credentials)
}
