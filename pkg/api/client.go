package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/phoenixvc/mystira-client/pkg/cache"
	"github.com/phoenixvc/mystira-client/pkg/errors"
	"github.com/phoenixvc/mystira-client/pkg/logging"
)

// client implements the Client interface
type client struct {
	config *ClientConfig
	http   *http.Client
	logger *zap.Logger

	// Resource clients
	characters *charactersClient
	scenarios  *scenariosClient
	bundles    *bundlesClient
	accounts   *accountsClient
	auth       *authClient

	mu sync.RWMutex
}

// NewClient creates a new Mystira API client
func NewClient(config *ClientConfig) (Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	logger, err := logging.NewQuietLogger(config.QuietMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c := &client{
		config: config,
		http:   &http.Client{Timeout: config.RequestTimeout},
		logger: logger,
	}

	c.characters = &charactersClient{client: c}
	c.scenarios = &scenariosClient{client: c}
	c.bundles = &bundlesClient{client: c}
	if config.CacheTTL > 0 {
		c.bundles.manifests = cache.New[[]BundleManifest](config.CacheTTL)
	}
	c.accounts = &accountsClient{client: c}
	c.auth = &authClient{client: c}

	return c, nil
}

// Characters returns the characters client
func (c *client) Characters() CharactersAPI {
	return c.characters
}

// Scenarios returns the scenarios client
func (c *client) Scenarios() ScenariosAPI {
	return c.scenarios
}

// Bundles returns the content bundles client
func (c *client) Bundles() ContentBundlesAPI {
	return c.bundles
}

// Accounts returns the accounts client
func (c *client) Accounts() AccountsAPI {
	return c.accounts
}

// Auth returns the auth client
func (c *client) Auth() AuthAPI {
	return c.auth
}

// SetTokens installs the token pair used for authenticated calls
func (c *client) SetTokens(pair *TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pair == nil {
		c.config.AccessToken = ""
		c.config.RefreshToken = ""
		return
	}
	c.config.AccessToken = pair.AccessToken
	c.config.RefreshToken = pair.RefreshToken
}

// Config returns a snapshot copy of the client's configuration
func (c *client) Config() *ClientConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.config == nil {
		return nil
	}
	cp := *c.config
	return &cp
}

// baseURL returns the configured base URL without a trailing slash
func (c *client) baseURL() string {
	cfg := c.Config()
	return strings.TrimSuffix(cfg.BaseURL, "/")
}

// addHeaders sets the standard request headers including auth when present
func (c *client) addHeaders(req *http.Request) {
	cfg := c.Config()
	if cfg == nil {
		return
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	if cfg.DeviceID != "" {
		req.Header.Set("X-Device-ID", cfg.DeviceID)
	}
	if cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.AccessToken)
	}
}

// requireAuth enforces that an access token is present before an
// authenticated call is attempted.
func (c *client) requireAuth() error {
	cfg := c.Config()
	if cfg == nil || strings.TrimSpace(cfg.AccessToken) == "" {
		return errors.NewUnauthorizedError("access token required")
	}
	return nil
}

// doJSON performs a single JSON request/response round trip. Absent
// results surface as a typed not-found error; other non-2xx statuses map
// to the matching typed error with the backend's message attached.
func (c *client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doStream performs a request and returns the raw response body for
// streaming reads. The caller must close the reader.
func (c *client) doStream(ctx context.Context, method, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL()+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, c.decodeError(resp, path)
	}

	return resp.Body, nil
}

// decodeError turns a non-2xx response into a typed error
func (c *client) decodeError(resp *http.Response, path string) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, &payload)

	resource := resourceFromPath(path)
	err := errors.FromStatus(resp.StatusCode, resource, payload.Error)

	c.logger.Debug("API call failed",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", payload.Error),
	)
	return err
}

// resourceFromPath extracts the resource name from an API path like
// /v1/characters/abc -> "characters"
func resourceFromPath(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "v1" {
		return parts[1]
	}
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "resource"
}
