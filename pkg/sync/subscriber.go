// Package sync delivers live content events from the backend so local
// caches and downloaded bundles can be kept current. It subscribes to
// the /v1/events websocket stream and hands decoded events to the
// caller; acting on an event (re-fetching a bundle, invalidating a
// cache) is the caller's business.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/phoenixvc/mystira-client/pkg/logging"
)

// Event types pushed by the backend.
const (
	EventBundleUpdated = "bundle_updated"
)

// Event is a single content event from the backend
type Event struct {
	Type      string `json:"type"`
	BundleID  string `json:"bundle_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Time returns the event timestamp as a time.Time
func (e Event) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Subscriber maintains a websocket subscription to the event stream.
// One connection per Subscriber; a failed connection is surfaced to the
// caller rather than redialed.
type Subscriber struct {
	logger *logging.ColoredLogger
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}
}

// Subscribe dials the event stream of the backend at baseURL and starts
// delivering events. If accessToken is non-empty it is passed as a
// query parameter the way browser websocket clients do, since they
// cannot set an Authorization header.
func Subscribe(ctx context.Context, baseURL, accessToken string, logger *logging.ColoredLogger) (*Subscriber, error) {
	if logger == nil {
		var err error
		logger, err = logging.NewColoredLogger(logging.ComponentSync, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	wsURL, err := eventStreamURL(baseURL, accessToken)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("event stream dial failed: %s: %w", resp.Status, err)
		}
		return nil, fmt.Errorf("event stream dial failed: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	s := &Subscriber{
		logger: logger,
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}

	logger.ComponentInfo(logging.ComponentSync, "Subscribed to event stream",
		zap.String("url", wsURL))

	go s.readLoop()
	return s, nil
}

// Events returns the stream of decoded events. The channel closes when
// the connection drops or Close is called.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Close tears the subscription down
func (s *Subscriber) Close() error {
	select {
	case <-s.done:
		return nil
	default:
	}
	deadline := time.Now().Add(time.Second)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return s.conn.Close()
}

func (s *Subscriber) readLoop() {
	defer func() {
		close(s.done)
		close(s.events)
		_ = s.conn.Close()
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.ComponentWarn(logging.ComponentSync, "Event stream closed unexpectedly",
					zap.Error(err))
			}
			return
		}

		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			s.logger.ComponentWarn(logging.ComponentSync, "Dropping malformed event",
				zap.Error(err))
			continue
		}

		select {
		case s.events <- evt:
		default:
			// Slow consumer: drop the oldest event to keep up.
			select {
			case <-s.events:
			default:
			}
			s.events <- evt
		}
	}
}

// eventStreamURL converts an http(s) base URL into the ws(s) URL of the
// event stream endpoint.
func eventStreamURL(baseURL, accessToken string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid base URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/events"
	if accessToken != "" {
		q := u.Query()
		q.Set("token", accessToken)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
