package devserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/phoenixvc/mystira-client/pkg/logging"
)

// eventEnvelope is the wire format for content events pushed to
// subscribers over /v1/events.
type eventEnvelope struct {
	Type      string `json:"type"`
	BundleID  string `json:"bundle_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// eventHub fans content events out to connected websocket subscribers
type eventHub struct {
	logger   *logging.ColoredLogger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan eventEnvelope
	closed  bool
}

func newEventHub(logger *logging.ColoredLogger) *eventHub {
	return &eventHub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local dev server, any origin is fine.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan eventEnvelope),
	}
}

// handleSubscribe upgrades the connection and streams events until the
// client goes away or the hub closes.
func (h *eventHub) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ComponentWarn(logging.ComponentStub, "Websocket upgrade failed", zap.Error(err))
		return
	}

	ch := make(chan eventEnvelope, 16)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[conn] = ch
	h.mu.Unlock()

	h.logger.ComponentDebug(logging.ComponentStub, "Event subscriber connected",
		zap.String("remote", conn.RemoteAddr().String()))

	// Reader goroutine only to detect disconnects; subscribers never
	// send application data.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()

	for env := range ch {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(env); err != nil {
			h.drop(conn)
			return
		}
	}
	_ = conn.Close()
}

// broadcast delivers an event to every connected subscriber. Slow
// subscribers are dropped rather than blocking the hub.
func (h *eventHub) broadcast(env eventEnvelope) {
	h.mu.Lock()
	var slow []*websocket.Conn
	for conn, ch := range h.clients {
		select {
		case ch <- env:
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range slow {
		h.drop(conn)
	}
}

// drop removes a subscriber and closes its connection
func (h *eventHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	ch, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(ch)
	}
	h.mu.Unlock()

	if ok {
		_ = conn.Close()
	}
}

// close disconnects all subscribers
func (h *eventHub) close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn, ch := range h.clients {
		delete(h.clients, conn)
		close(ch)
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}
