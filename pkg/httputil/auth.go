package httputil

import (
	"net/http"
	"strings"
)

// ExtractBearerToken extracts a Bearer token from the Authorization header.
// Returns an empty string if no Bearer token is found.
func ExtractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	lower := strings.ToLower(auth)
	if strings.HasPrefix(lower, "bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}

	return ""
}

// ExtractToken extracts an access token from the request:
// 1. Authorization header with "Bearer" scheme (highest priority)
// 2. Query parameter "token" (for WebSocket support)
func ExtractToken(r *http.Request) string {
	if tok := ExtractBearerToken(r); tok != "" {
		return tok
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// ExtractDeviceHeader extracts the device ID from the X-Device-ID header.
func ExtractDeviceHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Device-ID"))
}
