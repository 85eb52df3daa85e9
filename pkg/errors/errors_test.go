package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	err := NewNotFoundError("character", "char-1")

	if !stderrors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
	if err.Code() != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code())
	}
	if !strings.Contains(err.Error(), "character") {
		t.Errorf("expected resource in message, got %q", err.Error())
	}
}

func TestUnauthorizedErrorMatchesSentinel(t *testing.T) {
	err := NewUnauthorizedError("token expired")

	if !stderrors.Is(err, ErrUnauthorized) {
		t.Error("UnauthorizedError should match ErrUnauthorized")
	}
	if err.Code() != CodeUnauthorized {
		t.Errorf("expected code %s, got %s", CodeUnauthorized, err.Code())
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("email", "invalid email address", "not-an-email")

	if err.Code() != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code())
	}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("expected field in message, got %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, "failed to persist bundle")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "failed to persist bundle") {
		t.Errorf("expected wrap message, got %q", err.Error())
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if err := Wrap(nil, "context"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestWrapKeepsTypedCode(t *testing.T) {
	err := Wrap(NewNotFoundError("bundle", "b-1"), "refresh failed")

	var typed Error
	if !stderrors.As(err, &typed) {
		t.Fatal("wrapped typed error should still be typed")
	}
	if typed.Code() != CodeNotFound {
		t.Errorf("expected code %s to survive wrapping, got %s", CodeNotFound, typed.Code())
	}
	if !stderrors.Is(err, ErrNotFound) {
		t.Error("wrapped not-found error should still match ErrNotFound")
	}
}

func TestWrapfFormatsMessage(t *testing.T) {
	err := Wrapf(stderrors.New("boom"), "loading scene %s", "sc-1")
	if !strings.Contains(err.Error(), "loading scene sc-1") {
		t.Errorf("expected formatted message, got %q", err.Error())
	}
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf("unknown storage driver %q", "bolt")
	if !strings.Contains(err.Error(), `"bolt"`) {
		t.Errorf("expected formatted message, got %q", err.Error())
	}
	if err := New("plain"); err.Error() != "plain" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestConflictErrorMessage(t *testing.T) {
	err := NewConflictError("account")
	if err.Code() != CodeConflict {
		t.Errorf("expected code %s, got %s", CodeConflict, err.Code())
	}
	if !strings.Contains(err.Error(), "account already exists") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStorageErrorCarriesKey(t *testing.T) {
	cause := stderrors.New("database is locked")
	err := NewStorageError("profile:prof-1", "put failed", cause)

	if err.Code() != CodeStorageError {
		t.Errorf("expected code %s, got %s", CodeStorageError, err.Code())
	}
	if !stderrors.Is(err, cause) {
		t.Error("storage error should unwrap to its cause")
	}
	if err.Key != "profile:prof-1" {
		t.Errorf("expected key to be preserved, got %q", err.Key)
	}
}

func TestStackTraceCaptured(t *testing.T) {
	err := NewInternalError("boom", nil)
	if err.StackTrace() == "" {
		t.Error("expected a captured stack trace")
	}
	if !strings.Contains(err.StackTrace(), "errors_test.go") {
		t.Error("stack trace should include the call site")
	}
}

func TestGetCategory(t *testing.T) {
	tests := []struct {
		code     string
		category ErrorCategory
	}{
		{CodeValidation, CategoryClient},
		{CodeNotFound, CategoryClient},
		{CodeUnauthorized, CategoryAuth},
		{CodeTimeout, CategoryTimeout},
		{CodeServiceUnavailable, CategoryNetwork},
		{CodeInternal, CategoryServer},
		{CodeStorageError, CategoryServer},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := GetCategory(tt.code); got != tt.category {
				t.Errorf("GetCategory(%s) = %v, want %v", tt.code, got, tt.category)
			}
		})
	}
}
