package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/phoenixvc/mystira-client/pkg/errors"
)

// accountsClient implements AccountsAPI over HTTP. All operations
// require an access token.
type accountsClient struct {
	client *client
}

// Me returns the authenticated account
func (ac *accountsClient) Me(ctx context.Context) (*Account, error) {
	if err := ac.client.requireAuth(); err != nil {
		return nil, err
	}

	var out Account
	if err := ac.client.doJSON(ctx, http.MethodGet, "/v1/accounts/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profiles returns the player profiles of the authenticated account
func (ac *accountsClient) Profiles(ctx context.Context) ([]Profile, error) {
	if err := ac.client.requireAuth(); err != nil {
		return nil, err
	}

	var out struct {
		Profiles []Profile `json:"profiles"`
	}
	if err := ac.client.doJSON(ctx, http.MethodGet, "/v1/accounts/me/profiles", nil, &out); err != nil {
		return nil, err
	}
	return out.Profiles, nil
}

// Sessions returns the past play sessions of a profile
func (ac *accountsClient) Sessions(ctx context.Context, profileID string) ([]SessionSummary, error) {
	if err := ac.client.requireAuth(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(profileID) == "" {
		return nil, errors.NewValidationError("profile_id", "profile id is required", profileID)
	}

	var out struct {
		Sessions []SessionSummary `json:"sessions"`
	}
	path := "/v1/profiles/" + url.PathEscape(profileID) + "/sessions"
	if err := ac.client.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}
