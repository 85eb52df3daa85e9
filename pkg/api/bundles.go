package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/phoenixvc/mystira-client/pkg/cache"
	"github.com/phoenixvc/mystira-client/pkg/errors"
)

// manifestCacheKey is the cache key for the bundle manifest list.
const manifestCacheKey = "bundles:manifests"

// bundlesClient implements ContentBundlesAPI over HTTP. Manifest lists
// are served from the TTL cache when one is configured.
type bundlesClient struct {
	client    *client
	manifests *cache.Cache[[]BundleManifest]
}

// List returns the manifests of all available content bundles
func (bc *bundlesClient) List(ctx context.Context) ([]BundleManifest, error) {
	if bc.manifests != nil {
		if cached, ok := bc.manifests.Get(manifestCacheKey); ok {
			// Copy so a caller mutating the result cannot poison the
			// cached list.
			out := make([]BundleManifest, len(cached))
			copy(out, cached)
			return out, nil
		}
	}

	var out struct {
		Bundles []BundleManifest `json:"bundles"`
	}
	if err := bc.client.doJSON(ctx, http.MethodGet, "/v1/bundles", nil, &out); err != nil {
		return nil, err
	}

	if bc.manifests != nil {
		bc.manifests.Set(manifestCacheKey, out.Bundles)
	}
	return out.Bundles, nil
}

// Get returns a single bundle with its content references
func (bc *bundlesClient) Get(ctx context.Context, id string) (*Bundle, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("id", "bundle id is required", id)
	}

	var out Bundle
	if err := bc.client.doJSON(ctx, http.MethodGet, "/v1/bundles/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download streams the raw bundle archive
func (bc *bundlesClient) Download(ctx context.Context, id string) (io.ReadCloser, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewValidationError("id", "bundle id is required", id)
	}
	return bc.client.doStream(ctx, http.MethodGet, "/v1/bundles/"+url.PathEscape(id)+"/download")
}

// InvalidateCache drops any cached manifest list
func (bc *bundlesClient) InvalidateCache() {
	if bc.manifests != nil {
		bc.manifests.Delete(manifestCacheKey)
	}
}
