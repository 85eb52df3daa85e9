package api

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/phoenixvc/mystira-client/pkg/errors"
)

// authClient implements the passwordless AuthAPI over HTTP
type authClient struct {
	client *client
}

// signupRequest is the body for a passwordless signup request
type signupRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// signinRequest is the body for a passwordless signin request
type signinRequest struct {
	Email string `json:"email"`
}

// verifyRequest is the body for code verification
type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// refreshRequest is the body for token refresh
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// logoutRequest is the body for logout/token revocation
type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RequestSignup starts a passwordless signup: the backend mails a
// verification code to the given address.
func (a *authClient) RequestSignup(ctx context.Context, email, displayName string) (*CodeChallenge, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	var out CodeChallenge
	body := signupRequest{Email: email, DisplayName: displayName}
	if err := a.client.doJSON(ctx, http.MethodPost, "/v1/auth/signup", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestSignin starts a passwordless signin for an existing account
func (a *authClient) RequestSignin(ctx context.Context, email string) (*CodeChallenge, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	var out CodeChallenge
	if err := a.client.doJSON(ctx, http.MethodPost, "/v1/auth/signin", signinRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify exchanges a verification code for a token pair and installs the
// tokens on the client.
func (a *authClient) Verify(ctx context.Context, email, code string) (*TokenPair, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, errors.NewValidationError("code", "verification code is required", code)
	}

	var out TokenPair
	if err := a.client.doJSON(ctx, http.MethodPost, "/v1/auth/verify", verifyRequest{Email: email, Code: code}, &out); err != nil {
		return nil, err
	}

	a.client.SetTokens(&out)
	return &out, nil
}

// Refresh exchanges a refresh token for a fresh token pair and installs
// it on the client. Callers decide when to refresh; the client never
// refreshes on its own.
func (a *authClient) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, errors.NewValidationError("refresh_token", "refresh token is required", nil)
	}

	var out TokenPair
	if err := a.client.doJSON(ctx, http.MethodPost, "/v1/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}

	a.client.SetTokens(&out)
	return &out, nil
}

// Logout revokes a refresh token and clears the installed tokens
func (a *authClient) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return errors.NewValidationError("refresh_token", "refresh token is required", nil)
	}

	if err := a.client.doJSON(ctx, http.MethodPost, "/v1/auth/logout", logoutRequest{RefreshToken: refreshToken}, nil); err != nil {
		return err
	}

	a.client.SetTokens(nil)
	return nil
}

// validateEmail rejects obviously malformed addresses before any
// request is made.
func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.NewValidationError("email", "email is required", email)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.NewValidationError("email", "invalid email address", email)
	}
	return nil
}
