// Package app assembles the client service layer from configuration:
// the API client, local storage, the awards holder, the Discord
// integration, and the live event subscription.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/phoenixvc/mystira-client/pkg/api"
	"github.com/phoenixvc/mystira-client/pkg/awards"
	"github.com/phoenixvc/mystira-client/pkg/config"
	"github.com/phoenixvc/mystira-client/pkg/discord"
	"github.com/phoenixvc/mystira-client/pkg/logging"
	"github.com/phoenixvc/mystira-client/pkg/storage"
	"github.com/phoenixvc/mystira-client/pkg/sync"
)

// App bundles the client-side services for one configuration.
type App struct {
	API     api.Client
	Store   storage.Store
	Awards  *awards.State
	Discord discord.Service

	config *config.Config
	logger *logging.ColoredLogger
}

// New builds the service layer from a validated configuration.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewColoredLogger(logging.ComponentGeneral, cfg.Logging.EnableColors)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	clientCfg := api.DefaultClientConfig(cfg.API.BaseURL)
	clientCfg.QuietMode = cfg.Logging.Quiet
	if cfg.API.RequestTimeout > 0 {
		clientCfg.RequestTimeout = cfg.API.RequestTimeout
	}
	if cfg.API.UserAgent != "" {
		clientCfg.UserAgent = cfg.API.UserAgent
	}
	clientCfg.DeviceID = cfg.API.DeviceID
	if cfg.Cache.Enabled {
		clientCfg.CacheTTL = cfg.Cache.TTL
	}

	client, err := api.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	// The real integration is not part of this layer; an enabled flag
	// still gets the no-op stand-in.
	if cfg.Discord.Enabled {
		logger.ComponentWarn(logging.ComponentDiscord,
			"Discord integration enabled in config but no integration is built in; using no-op service")
	}

	return &App{
		API:     client,
		Store:   store,
		Awards:  awards.NewState(),
		Discord: discord.NewNoopService(),
		config:  cfg,
		logger:  logger,
	}, nil
}

// Subscribe opens the live content-event stream for this app's backend.
// The caller owns the returned subscriber.
func (a *App) Subscribe(ctx context.Context) (*sync.Subscriber, error) {
	token := a.API.Config().AccessToken
	return sync.Subscribe(ctx, a.config.API.BaseURL, token, a.logger)
}

// Close releases the app's local resources.
func (a *App) Close() error {
	if err := a.Store.Close(); err != nil {
		a.logger.ComponentError(logging.ComponentStorage, "Failed to close storage", zap.Error(err))
		return err
	}
	return nil
}
