package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestFromStatusSuccessIsNil(t *testing.T) {
	for _, status := range []int{200, 201, 204, 299} {
		if err := FromStatus(status, "character", ""); err != nil {
			t.Errorf("FromStatus(%d) = %v, want nil", status, err)
		}
	}
}

func TestFromStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status, "scenario", "nope")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !stderrors.Is(err, tt.sentinel) {
				t.Errorf("FromStatus(%d) should match %v, got %v", tt.status, tt.sentinel, err)
			}
		})
	}
}

func TestFromStatusTypes(t *testing.T) {
	var validation *ValidationError
	if !stderrors.As(FromStatus(http.StatusBadRequest, "", "bad input"), &validation) {
		t.Error("400 should map to a ValidationError")
	}

	var conflict *ConflictError
	if !stderrors.As(FromStatus(http.StatusConflict, "account", ""), &conflict) {
		t.Error("409 should map to a ConflictError")
	}

	var timeout *TimeoutError
	if !stderrors.As(FromStatus(http.StatusGatewayTimeout, "bundles", ""), &timeout) {
		t.Error("504 should map to a TimeoutError")
	}

	var rateLimit *RateLimitError
	if !stderrors.As(FromStatus(http.StatusTooManyRequests, "", ""), &rateLimit) {
		t.Error("429 should map to a RateLimitError")
	}

	var service *ServiceError
	if !stderrors.As(FromStatus(http.StatusBadGateway, "api", "upstream down"), &service) {
		t.Fatal("502 should map to a ServiceError")
	}
	if service.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502 on ServiceError, got %d", service.StatusCode)
	}
}

func TestStatusCodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NewNotFoundError("scene", "sc-1"), http.StatusNotFound},
		{"validation", NewValidationError("email", "required", nil), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("expired"), http.StatusUnauthorized},
		{"timeout", NewTimeoutError("download"), http.StatusRequestTimeout},
		{"rate limit", NewRateLimitError(60), http.StatusTooManyRequests},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.status {
				t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.status)
			}
		})
	}
}
