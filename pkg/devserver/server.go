// Package devserver is a local stand-in for the Mystira backend. It
// serves a fixture content catalog and an in-memory passwordless auth
// flow so the SDK can be developed and tested without a real backend.
package devserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/phoenixvc/mystira-client/pkg/config"
	"github.com/phoenixvc/mystira-client/pkg/httputil"
	"github.com/phoenixvc/mystira-client/pkg/logging"
)

// Server is the local dev stub API server
type Server struct {
	logger *logging.ColoredLogger
	config *config.StubConfig
	router chi.Router
	store  *contentStore
	auth   *authService
	events *eventHub
	server *http.Server
}

// NewServer creates a new dev stub server
func NewServer(logger *logging.ColoredLogger, cfg *config.StubConfig) (*Server, error) {
	if logger == nil {
		var err error
		logger, err = logging.NewDefaultLogger(logging.ComponentStub)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	store := newContentStore()
	if cfg.SeedData {
		store.seed()
	}

	s := &Server{
		logger: logger,
		config: cfg,
		router: chi.NewRouter(),
		store:  store,
		auth:   newAuthService(store),
	}
	s.events = newEventHub(logger)

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.registerRoutes()

	s.logger.ComponentInfo(logging.ComponentStub, "Dev stub server initialized",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.Bool("seeded", cfg.SeedData),
	)

	return s, nil
}

// registerRoutes sets up all API routes
func (s *Server) registerRoutes() {
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteOK(w, map[string]any{"service": "mystira-stub"})
	})

	s.router.Route("/v1", func(r chi.Router) {
		// Public content catalog
		r.Get("/characters", s.handleListCharacters)
		r.Get("/characters/{id}", s.handleGetCharacter)
		r.Get("/scenarios", s.handleListScenarios)
		r.Get("/scenarios/{id}", s.handleGetScenario)
		r.Get("/scenarios/{id}/scenes", s.handleListScenes)
		r.Get("/scenarios/{id}/scenes/{sceneID}", s.handleGetScene)
		r.Get("/bundles", s.handleListBundles)
		r.Get("/bundles/{id}", s.handleGetBundle)
		r.Get("/bundles/{id}/download", s.handleDownloadBundle)

		// Passwordless auth flow
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/signin", s.handleSignin)
		r.Post("/auth/verify", s.handleVerify)
		r.Post("/auth/refresh", s.handleRefresh)
		r.Post("/auth/logout", s.handleLogout)

		// Authenticated account data
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/accounts/me", s.handleMe)
			r.Get("/accounts/me/profiles", s.handleProfiles)
			r.Get("/profiles/{id}/sessions", s.handleSessions)
		})

		// Live content events
		r.Get("/events", s.events.handleSubscribe)
	})
}

// requireAuth resolves the bearer token to an account and stores the
// account ID on the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := httputil.ExtractToken(r)
		if token == "" {
			httputil.WriteError(w, http.StatusUnauthorized, "missing access token")
			return
		}
		accountID, ok := s.auth.Authenticate(token)
		if !ok {
			httputil.WriteError(w, http.StatusUnauthorized, "invalid or expired access token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withAccountID(r.Context(), accountID)))
	})
}

// Start begins serving. It blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.ComponentInfo(logging.ComponentStub, "Dev stub server listening",
		zap.String("addr", s.config.ListenAddr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dev stub server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	s.events.close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the underlying router, for tests that mount the stub
// in an httptest server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// PublishBundleUpdate broadcasts a bundle-update event to all event
// subscribers.
func (s *Server) PublishBundleUpdate(bundleID string) {
	s.events.broadcast(eventEnvelope{
		Type:      "bundle_updated",
		BundleID:  bundleID,
		Timestamp: time.Now().UnixMilli(),
	})
}

// accountIDKey is the context key for the authenticated account ID
type accountIDKey struct{}

func withAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, accountIDKey{}, id)
}

func accountIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(accountIDKey{}).(string); ok {
		return v
	}
	return ""
}
