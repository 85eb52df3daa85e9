package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/phoenixvc/mystira-client/pkg/errors"
)

// charactersClient implements CharactersAPI over HTTP
type charactersClient struct {
	client *client
}

// List returns all characters in the catalog
func (cc *charactersClient) List(ctx context.Context) ([]Character, error) {
	var out struct {
		Characters []Character `json:"characters"`
	}
	if err := cc.client.doJSON(ctx, http.MethodGet, "/v1/characters", nil, &out); err != nil {
		return nil, err
	}
	return out.Characters, nil
}

// Get returns a single character by ID
func (cc *charactersClient) Get(ctx context.Context, id string) (*Character, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("id", "character id is required", id)
	}

	var out Character
	if err := cc.client.doJSON(ctx, http.MethodGet, "/v1/characters/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
