package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phoenixvc/mystira-client/pkg/errors"
)

func TestAuthVerifyInstallsTokens(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/signin":
			var body struct {
				Email string `json:"email"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.Email != "player@mystira.app" {
				t.Errorf("unexpected email %q", body.Email)
			}
			json.NewEncoder(w).Encode(CodeChallenge{
				Email:     body.Email,
				Delivery:  "email",
				ExpiresAt: time.Now().Add(5 * time.Minute),
			})
		case "/v1/auth/verify":
			var body struct {
				Email string `json:"email"`
				Code  string `json:"code"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.Code != "123456" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "verification failed"})
				return
			}
			json.NewEncoder(w).Encode(TokenPair{
				AccessToken:  "acc-1",
				TokenType:    "Bearer",
				ExpiresIn:    900,
				RefreshToken: "ref-1",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	client := newTestClient(t, ts)
	ctx := context.Background()

	challenge, err := client.Auth().RequestSignin(ctx, "player@mystira.app")
	if err != nil {
		t.Fatalf("RequestSignin failed: %v", err)
	}
	if challenge.Delivery != "email" {
		t.Errorf("unexpected delivery %q", challenge.Delivery)
	}

	pair, err := client.Auth().Verify(ctx, "player@mystira.app", "123456")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if pair.AccessToken != "acc-1" {
		t.Errorf("unexpected access token %q", pair.AccessToken)
	}

	// Verify installs the tokens on the client.
	snap := client.Config()
	if snap.AccessToken != "acc-1" || snap.RefreshToken != "ref-1" {
		t.Errorf("tokens were not installed: %+v", snap)
	}
}

func TestAuthVerifyWrongCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "verification failed"})
	}))
	defer ts.Close()

	client := newTestClient(t, ts)
	_, err := client.Auth().Verify(context.Background(), "player@mystira.app", "000000")
	if !stderrors.Is(err, errors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// Failed verification must not install tokens.
	if client.Config().AccessToken != "" {
		t.Error("tokens must not be installed after a failed verify")
	}
}

func TestAuthRefreshRotatesTokens(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.RefreshToken != "ref-old" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid refresh token"})
			return
		}
		json.NewEncoder(w).Encode(TokenPair{
			AccessToken:  "acc-new",
			TokenType:    "Bearer",
			ExpiresIn:    900,
			RefreshToken: "ref-new",
		})
	}))
	defer ts.Close()

	client := newTestClient(t, ts)
	client.SetTokens(&TokenPair{AccessToken: "acc-old", RefreshToken: "ref-old"})

	pair, err := client.Auth().Refresh(context.Background(), "ref-old")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if pair.AccessToken != "acc-new" {
		t.Errorf("unexpected access token %q", pair.AccessToken)
	}

	snap := client.Config()
	if snap.AccessToken != "acc-new" || snap.RefreshToken != "ref-new" {
		t.Errorf("rotated tokens were not installed: %+v", snap)
	}
}

func TestAuthLogoutClearsTokens(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer ts.Close()

	client := newTestClient(t, ts)
	client.SetTokens(&TokenPair{AccessToken: "acc", RefreshToken: "ref"})

	if err := client.Auth().Logout(context.Background(), "ref"); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	snap := client.Config()
	if snap.AccessToken != "" || snap.RefreshToken != "" {
		t.Error("Logout must clear the installed tokens")
	}
}

func TestAuthInputValidation(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	client := newTestClient(t, ts)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"signup empty email", func() error {
			_, err := client.Auth().RequestSignup(ctx, "", "Player")
			return err
		}},
		{"signup malformed email", func() error {
			_, err := client.Auth().RequestSignup(ctx, "not-an-email", "Player")
			return err
		}},
		{"signin malformed email", func() error {
			_, err := client.Auth().RequestSignin(ctx, "@@")
			return err
		}},
		{"verify empty code", func() error {
			_, err := client.Auth().Verify(ctx, "player@mystira.app", " ")
			return err
		}},
		{"refresh empty token", func() error {
			_, err := client.Auth().Refresh(ctx, "")
			return err
		}},
		{"logout empty token", func() error {
			return client.Auth().Logout(ctx, "")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var validation *errors.ValidationError
			if !stderrors.As(err, &validation) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}

	if called {
		t.Error("invalid input must not reach the backend")
	}
}
