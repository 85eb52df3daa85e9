package config

import (
	"time"
)

// Config represents the main configuration for the Mystira client
type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
	Discord DiscordConfig `yaml:"discord"`
	Logging LoggingConfig `yaml:"logging"`
	Stub    StubConfig    `yaml:"stub"`
}

// APIConfig contains backend API configuration
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`        // Mystira API base URL
	RequestTimeout time.Duration `yaml:"request_timeout"` // Per-request timeout
	UserAgent      string        `yaml:"user_agent"`      // Sent with every request
	DeviceID       string        `yaml:"device_id"`       // Stable per-install identifier
}

// StorageConfig contains local storage configuration
type StorageConfig struct {
	Driver    string `yaml:"driver"`    // "sqlite" or "memory"
	Path      string `yaml:"path"`      // SQLite database path
	Namespace string `yaml:"namespace"` // Key namespace, defaults to "mystira"
}

// CacheConfig contains the in-memory TTL cache configuration
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"` // Default entry TTL
}

// DiscordConfig contains the optional Discord integration configuration.
// When Enabled is false the client wires the no-op service.
type DiscordConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	EnableColors bool   `yaml:"enable_colors"`
	Quiet        bool   `yaml:"quiet"`
	FilePath     string `yaml:"file_path"` // Optional log file; stdout if empty
}

// StubConfig contains the local dev stub server configuration
type StubConfig struct {
	ListenAddr string `yaml:"listen_addr"` // e.g. "127.0.0.1:6780"
	SeedData   bool   `yaml:"seed_data"`   // Seed fixture content on startup
}

// DefaultConfig returns a configuration with sane defaults for local development
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://127.0.0.1:6780",
			RequestTimeout: 30 * time.Second,
			UserAgent:      "mystira-client/1.0",
		},
		Storage: StorageConfig{
			Driver:    "sqlite",
			Path:      "mystira.db",
			Namespace: "mystira",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Discord: DiscordConfig{
			Enabled: false,
		},
		Logging: LoggingConfig{
			EnableColors: true,
			Quiet:        false,
		},
		Stub: StubConfig{
			ListenAddr: "127.0.0.1:6780",
			SeedData:   true,
		},
	}
}
