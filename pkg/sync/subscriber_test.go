package sync

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phoenixvc/mystira-client/pkg/config"
	"github.com/phoenixvc/mystira-client/pkg/devserver"
)

func TestEventStreamURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		token   string
		want    string
		wantErr bool
	}{
		{"http", "http://127.0.0.1:6780", "", "ws://127.0.0.1:6780/v1/events", false},
		{"https", "https://api.mystira.app", "", "wss://api.mystira.app/v1/events", false},
		{"trailing slash", "http://127.0.0.1:6780/", "", "ws://127.0.0.1:6780/v1/events", false},
		{"with token", "http://127.0.0.1:6780", "tok", "ws://127.0.0.1:6780/v1/events?token=tok", false},
		{"bad scheme", "ftp://example.com", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eventStreamURL(tt.baseURL, tt.token)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("eventStreamURL failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("eventStreamURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubscriberReceivesBundleUpdates(t *testing.T) {
	srv, err := devserver.NewServer(nil, &config.StubConfig{ListenAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := Subscribe(ctx, ts.URL, "", nil)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Close()

	// Publish until the subscriber sees an event; the server registers
	// the connection shortly after the handshake completes.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				srv.PublishBundleUpdate("starter-pack")
			}
		}
	}()

	select {
	case evt, ok := <-sub.Events():
		if !ok {
			t.Fatal("event channel closed before any event arrived")
		}
		if evt.Type != EventBundleUpdated {
			t.Errorf("unexpected event type %q", evt.Type)
		}
		if evt.BundleID != "starter-pack" {
			t.Errorf("unexpected bundle id %q", evt.BundleID)
		}
		if evt.Time().IsZero() {
			t.Error("event timestamp missing")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for an event")
	}
}

func TestSubscriberCloseEndsStream(t *testing.T) {
	srv, err := devserver.NewServer(nil, &config.StubConfig{ListenAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := Subscribe(ctx, ts.URL, "", nil)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	if err := sub.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Error("expected the event channel to close without events")
		}
	case <-ctx.Done():
		t.Fatal("event channel did not close after Close")
	}
}

func TestSubscribeBadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := Subscribe(ctx, "ftp://example.com", "", nil); err == nil {
		t.Error("expected an error for an unsupported scheme")
	}
}
