package api

import (
	"context"
	"io"
	"time"
)

// Client provides the main interface for applications to talk to the
// Mystira backend. Every call is a single request/response round trip;
// there is no retry or backoff and no automatic token refresh.
type Client interface {
	// Resource clients
	Characters() CharactersAPI
	Scenarios() ScenariosAPI
	Bundles() ContentBundlesAPI
	Accounts() AccountsAPI
	Auth() AuthAPI

	// SetTokens installs the token pair used for authenticated calls.
	// Passing nil clears the tokens.
	SetTokens(pair *TokenPair)

	// Config access (snapshot copy)
	Config() *ClientConfig
}

// CharactersAPI provides read access to the character catalog
type CharactersAPI interface {
	List(ctx context.Context) ([]Character, error)
	Get(ctx context.Context, id string) (*Character, error)
}

// ScenariosAPI provides read access to scenarios and their scenes
type ScenariosAPI interface {
	List(ctx context.Context) ([]Scenario, error)
	Get(ctx context.Context, id string) (*Scenario, error)
	Scenes(ctx context.Context, scenarioID string) ([]Scene, error)
	Scene(ctx context.Context, scenarioID, sceneID string) (*Scene, error)
}

// ContentBundlesAPI provides access to downloadable content bundles
type ContentBundlesAPI interface {
	List(ctx context.Context) ([]BundleManifest, error)
	Get(ctx context.Context, id string) (*Bundle, error)
	// Download streams the raw bundle archive. The caller owns the reader.
	Download(ctx context.Context, id string) (io.ReadCloser, error)
}

// AccountsAPI provides access to the authenticated account and its data
type AccountsAPI interface {
	Me(ctx context.Context) (*Account, error)
	Profiles(ctx context.Context) ([]Profile, error)
	Sessions(ctx context.Context, profileID string) ([]SessionSummary, error)
}

// AuthAPI implements the passwordless authentication flow: request a
// verification code by email, then exchange the code for tokens.
type AuthAPI interface {
	RequestSignup(ctx context.Context, email, displayName string) (*CodeChallenge, error)
	RequestSignin(ctx context.Context, email string) (*CodeChallenge, error)
	Verify(ctx context.Context, email, code string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Data structures

// Character represents a story character from the catalog
type Character struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Traits      []string  `json:"traits,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Scenario represents a playable scenario
type Scenario struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	AgeRating  string    `json:"age_rating,omitempty"`
	SceneCount int       `json:"scene_count"`
	Tags       []string  `json:"tags,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Scene represents a single scene within a scenario
type Scene struct {
	ID         string   `json:"id"`
	ScenarioID string   `json:"scenario_id"`
	Title      string   `json:"title"`
	Order      int      `json:"order"`
	Body       string   `json:"body"`
	Choices    []Choice `json:"choices,omitempty"`
}

// Choice represents a branching option within a scene
type Choice struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	NextSceneID string `json:"next_scene_id,omitempty"`
}

// BundleManifest describes a content bundle without its contents
type BundleManifest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Size      int64     `json:"size"`
	Checksum  string    `json:"checksum,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bundle is a manifest plus the IDs of the content it carries
type Bundle struct {
	Manifest    BundleManifest `json:"manifest"`
	ScenarioIDs []string       `json:"scenario_ids,omitempty"`
	CharacterIDs []string      `json:"character_ids,omitempty"`
}

// Account represents the authenticated account
type Account struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile represents a player profile under an account
type Profile struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	AvatarID  string `json:"avatar_id,omitempty"`
}

// SessionSummary describes a past play session
type SessionSummary struct {
	ID          string     `json:"id"`
	ProfileID   string     `json:"profile_id"`
	ScenarioID  string     `json:"scenario_id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Score       int        `json:"score"`
}

// Award represents a single award earned during a session
type Award struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SessionResult is the finalized outcome of a play session
type SessionResult struct {
	SessionID   string    `json:"session_id"`
	ProfileID   string    `json:"profile_id"`
	ScenarioID  string    `json:"scenario_id"`
	CompletedAt time.Time `json:"completed_at"`
	Score       int       `json:"score"`
	Awards      []Award   `json:"awards,omitempty"`
}

// CodeChallenge is the response to a passwordless signup/signin request
type CodeChallenge struct {
	Email     string    `json:"email"`
	Delivery  string    `json:"delivery"` // e.g. "email"
	ExpiresAt time.Time `json:"expires_at"`
	// DebugCode is only populated by the local dev stub; the real
	// backend delivers the code out of band.
	DebugCode string `json:"debug_code,omitempty"`
}

// TokenPair is the result of a successful verify or refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// ClientConfig represents configuration for API clients
type ClientConfig struct {
	BaseURL        string        `json:"base_url"`
	RequestTimeout time.Duration `json:"request_timeout"`
	UserAgent      string        `json:"user_agent"`
	DeviceID       string        `json:"device_id"`
	QuietMode      bool          `json:"quiet_mode"` // Suppress debug/info logs
	CacheTTL       time.Duration `json:"cache_ttl"`  // Manifest list cache TTL; 0 disables
	AccessToken    string        `json:"access_token"`
	RefreshToken   string        `json:"refresh_token"`
}

// DefaultClientConfig returns a default client configuration
func DefaultClientConfig(baseURL string) *ClientConfig {
	return &ClientConfig{
		BaseURL:        baseURL,
		RequestTimeout: 30 * time.Second,
		UserAgent:      "mystira-client/1.0",
		QuietMode:      false,
	}
}
