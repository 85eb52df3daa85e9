package discord

import (
	"context"

	"github.com/phoenixvc/mystira-client/pkg/api"
)

// disabledMessage is the fixed status message reported while the
// integration is turned off.
const disabledMessage = "Discord integration is disabled"

// NoopService satisfies Service when the Discord integration is turned
// off. Every status query reports disabled and disconnected with no bot
// identity, and every send reports failure without performing any
// action or returning an error.
type NoopService struct{}

// NewNoopService creates the no-op stand-in.
func NewNoopService() *NoopService {
	return &NoopService{}
}

// Status always reports a disabled, disconnected integration.
func (s *NoopService) Status(ctx context.Context) Status {
	return Status{
		Enabled:   false,
		Connected: false,
		BotUser:   "",
		Message:   disabledMessage,
	}
}

// SendSessionResult reports failure without sending anything.
func (s *NoopService) SendSessionResult(ctx context.Context, result *api.SessionResult) SendResult {
	return SendResult{Delivered: false, Message: disabledMessage}
}

// SendAnnouncement reports failure without sending anything.
func (s *NoopService) SendAnnouncement(ctx context.Context, text string) SendResult {
	return SendResult{Delivered: false, Message: disabledMessage}
}
