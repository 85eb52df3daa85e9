package devserver

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/phoenixvc/mystira-client/pkg/api"
)

const (
	codeTTL        = 5 * time.Minute
	accessTokenTTL = 15 * time.Minute
	refreshTTL     = 30 * 24 * time.Hour
)

// pendingCode is an outstanding passwordless verification code. Only
// the bcrypt hash of the code is kept.
type pendingCode struct {
	codeHash    []byte
	displayName string
	signup      bool
	expiresAt   time.Time
}

// issuedToken tracks an opaque access or refresh token
type issuedToken struct {
	accountID string
	expiresAt time.Time
	revoked   bool
}

// authService implements the stub's passwordless flow: a code challenge
// keyed by email, then verify for an opaque token pair.
type authService struct {
	store *contentStore

	mu       sync.Mutex
	pending  map[string]*pendingCode  // keyed by lowercase email
	access   map[string]*issuedToken  // keyed by access token
	refresh  map[string]*issuedToken  // keyed by refresh token
}

func newAuthService(store *contentStore) *authService {
	return &authService{
		store:   store,
		pending: make(map[string]*pendingCode),
		access:  make(map[string]*issuedToken),
		refresh: make(map[string]*issuedToken),
	}
}

// CreateChallenge generates a six digit verification code for email and
// stores its hash with a five minute expiry. The plain code is returned
// so the stub can hand it back in the response; the real backend mails
// it instead.
func (a *authService) CreateChallenge(email, displayName string, signup bool) (code string, expiresAt time.Time, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !signup {
		if _, ok := a.store.getAccount(email); !ok {
			return "", time.Time{}, fmt.Errorf("no account for %s", email)
		}
	}

	code, err = generateCode()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to hash code: %w", err)
	}

	expiresAt = time.Now().Add(codeTTL)

	a.mu.Lock()
	defer a.mu.Unlock()
	// A new request replaces any outstanding code for the address.
	a.pending[email] = &pendingCode{
		codeHash:    hash,
		displayName: displayName,
		signup:      signup,
		expiresAt:   expiresAt,
	}
	return code, expiresAt, nil
}

// Verify checks a code against the outstanding challenge for email and
// issues a token pair. Codes are single use.
func (a *authService) Verify(email, code string) (*api.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a.mu.Lock()
	pc, ok := a.pending[email]
	if ok {
		// Single use: the challenge is consumed whether or not the
		// code matches its hash.
		delete(a.pending, email)
	}
	a.mu.Unlock()

	if !ok || time.Now().After(pc.expiresAt) {
		return nil, fmt.Errorf("no valid verification code for %s", email)
	}
	if err := bcrypt.CompareHashAndPassword(pc.codeHash, []byte(code)); err != nil {
		return nil, fmt.Errorf("verification code mismatch")
	}

	var acct *api.Account
	if pc.signup {
		acct = a.store.ensureAccount(email, pc.displayName)
	} else {
		var found bool
		acct, found = a.store.getAccount(email)
		if !found {
			return nil, fmt.Errorf("no account for %s", email)
		}
	}

	return a.issueTokens(acct.ID)
}

// Refresh validates a refresh token and rotates the pair
func (a *authService) Refresh(refreshToken string) (*api.TokenPair, error) {
	a.mu.Lock()
	tok, ok := a.refresh[refreshToken]
	if ok && !tok.revoked && time.Now().Before(tok.expiresAt) {
		tok.revoked = true
	} else {
		ok = false
	}
	a.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("invalid or expired refresh token")
	}
	return a.issueTokens(tok.accountID)
}

// Revoke invalidates a refresh token. Revoking an unknown token is not
// an error.
func (a *authService) Revoke(refreshToken string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if tok, ok := a.refresh[refreshToken]; ok {
		tok.revoked = true
	}
}

// Authenticate resolves an access token to an account ID
func (a *authService) Authenticate(accessToken string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	tok, ok := a.access[accessToken]
	if !ok || tok.revoked || time.Now().After(tok.expiresAt) {
		return "", false
	}
	return tok.accountID, true
}

// issueTokens mints an opaque access/refresh token pair for an account
func (a *authService) issueTokens(accountID string) (*api.TokenPair, error) {
	access, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	a.mu.Lock()
	a.access[access] = &issuedToken{accountID: accountID, expiresAt: now.Add(accessTokenTTL)}
	a.refresh[refresh] = &issuedToken{accountID: accountID, expiresAt: now.Add(refreshTTL)}
	a.mu.Unlock()

	return &api.TokenPair{
		AccessToken:  access,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTokenTTL.Seconds()),
		RefreshToken: refresh,
	}, nil
}

// randomToken generates a URL-safe random token (32 bytes)
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// generateCode produces a six digit verification code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
