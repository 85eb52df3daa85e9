// Package discord defines the optional Discord integration contract and
// the no-op stand-in used when the integration is turned off.
package discord

import (
	"context"

	"github.com/phoenixvc/mystira-client/pkg/api"
)

// Status describes the state of the Discord integration.
type Status struct {
	Enabled   bool   `json:"enabled"`
	Connected bool   `json:"connected"`
	BotUser   string `json:"bot_user,omitempty"`
	Message   string `json:"message,omitempty"`
}

// SendResult reports the outcome of a send-style operation. Send
// failures are reported here, not as errors.
type SendResult struct {
	Delivered bool   `json:"delivered"`
	Message   string `json:"message,omitempty"`
}

// Service is the capability interface for the Discord integration.
type Service interface {
	// Status reports whether the integration is enabled and connected.
	Status(ctx context.Context) Status

	// SendSessionResult posts a finalized session result to the
	// configured channel.
	SendSessionResult(ctx context.Context, result *api.SessionResult) SendResult

	// SendAnnouncement posts a plain text announcement to the
	// configured channel.
	SendAnnouncement(ctx context.Context, text string) SendResult
}
