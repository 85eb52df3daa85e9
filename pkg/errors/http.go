package errors

import (
	"errors"
	"net/http"
)

// FromStatus maps a backend response status to the matching typed
// error. 2xx maps to nil. resource and message give the error context
// and may be empty; unknown statuses, including 5xx, become a
// ServiceError carrying the status.
func FromStatus(status int, resource, message string) error {
	if status >= 200 && status < 300 {
		return nil
	}

	switch status {
	case http.StatusBadRequest:
		if message == "" {
			message = "invalid request"
		}
		return NewValidationError("", message, nil)
	case http.StatusUnauthorized:
		return NewUnauthorizedError(message)
	case http.StatusNotFound:
		return NewNotFoundError(resource, "")
	case http.StatusConflict:
		return NewConflictError(resource)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return NewTimeoutError(resource)
	case http.StatusTooManyRequests:
		return NewRateLimitError(0)
	default:
		return NewServiceError(resource, message, status)
	}
}

// StatusCode maps an error back to the HTTP status to answer with.
// nil maps to 200; untyped errors map to 500 unless they match one of
// the sentinels.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var typed Error
	if errors.As(err, &typed) {
		switch typed.Code() {
		case CodeValidation:
			return http.StatusBadRequest
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		case CodeTimeout:
			return http.StatusRequestTimeout
		case CodeRateLimit:
			return http.StatusTooManyRequests
		case CodeServiceUnavailable:
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
