// Package errors defines the failure types the Mystira client and its
// dev stub produce: rejected input, missing resources, failed
// authentication, conflicts, timeouts, rate limits, backend service
// failures, and local storage failures. Every typed error carries a
// machine-readable code and the stack captured at construction, and
// unwraps to its cause so call sites can use errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Codes carried by typed errors. FromStatus and StatusCode translate
// between these and HTTP statuses.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeTimeout            = "TIMEOUT"
	CodeRateLimit          = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeStorageError       = "STORAGE_ERROR"
	CodeInternal           = "INTERNAL"
)

// Sentinels for call sites that only care about the kind of failure.
// The typed not-found and unauthorized errors match these through Is,
// so errors.Is(err, ErrNotFound) works on anything FromStatus returns
// for a 404.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorCategory buckets codes for logging and reporting.
type ErrorCategory string

const (
	CategoryClient  ErrorCategory = "CLIENT_ERROR"
	CategoryAuth    ErrorCategory = "AUTH_ERROR"
	CategoryTimeout ErrorCategory = "TIMEOUT_ERROR"
	CategoryNetwork ErrorCategory = "NETWORK_ERROR"
	CategoryServer  ErrorCategory = "SERVER_ERROR"
)

// GetCategory buckets a code. Codes this package does not know land in
// CategoryServer.
func GetCategory(code string) ErrorCategory {
	switch code {
	case CodeValidation, CodeNotFound, CodeConflict:
		return CategoryClient
	case CodeUnauthorized:
		return CategoryAuth
	case CodeTimeout:
		return CategoryTimeout
	case CodeServiceUnavailable:
		return CategoryNetwork
	default:
		return CategoryServer
	}
}

// Error is implemented by every typed error in this package. Wrap uses
// it to keep a typed error's code when adding context.
type Error interface {
	error
	Code() string
	Message() string
	Unwrap() error
}

// coreError carries the fields shared by all typed errors.
type coreError struct {
	code  string
	msg   string
	cause error
	stack []uintptr
}

func newCore(code, msg string, cause error) *coreError {
	return &coreError{code: code, msg: msg, cause: cause, stack: callers(2)}
}

func callers(skip int) []uintptr {
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	return pc[:n]
}

func (e *coreError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *coreError) Code() string    { return e.code }
func (e *coreError) Message() string { return e.msg }
func (e *coreError) Unwrap() error   { return e.cause }

// StackTrace formats the stack captured at construction, with runtime
// frames filtered out.
func (e *coreError) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}
	var b strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			return b.String()
		}
	}
}

// ValidationError reports input rejected before any request is made.
// Field names the offending input when known.
type ValidationError struct {
	*coreError
	Field string
	Value any
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(field, message string, value any) *ValidationError {
	return &ValidationError{
		coreError: newCore(CodeValidation, message, nil),
		Field:     field,
		Value:     value,
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.msg
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.msg)
}

// NotFoundError reports a resource the backend does not have.
type NotFoundError struct {
	*coreError
	Resource string
	ID       string
}

// NewNotFoundError creates a not-found error for a resource, with an
// optional ID.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		coreError: newCore(CodeNotFound, resource+" not found", nil),
		Resource:  resource,
		ID:        id,
	}
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
	}
	return e.Resource + " not found"
}

// Is makes errors.Is(err, ErrNotFound) succeed on typed values.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnauthorizedError reports missing or failed authentication.
type UnauthorizedError struct {
	*coreError
}

// NewUnauthorizedError creates an unauthorized error; an empty message
// gets a generic one.
func NewUnauthorizedError(message string) *UnauthorizedError {
	if message == "" {
		message = "authentication required"
	}
	return &UnauthorizedError{coreError: newCore(CodeUnauthorized, message, nil)}
}

// Is makes errors.Is(err, ErrUnauthorized) succeed on typed values.
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// ConflictError reports a resource that already exists.
type ConflictError struct {
	*coreError
	Resource string
}

// NewConflictError creates a conflict error for a resource.
func NewConflictError(resource string) *ConflictError {
	msg := "already exists"
	if resource != "" {
		msg = resource + " already exists"
	}
	return &ConflictError{coreError: newCore(CodeConflict, msg, nil), Resource: resource}
}

// TimeoutError reports an operation that exceeded its deadline.
type TimeoutError struct {
	*coreError
	Operation string
}

// NewTimeoutError creates a timeout error for the named operation.
func NewTimeoutError(operation string) *TimeoutError {
	msg := "operation timed out"
	if operation != "" {
		msg = operation + " timed out"
	}
	return &TimeoutError{coreError: newCore(CodeTimeout, msg, nil), Operation: operation}
}

// RateLimitError reports a request rejected by the backend's limiter.
type RateLimitError struct {
	*coreError
	RetryAfter int // seconds; 0 when the backend did not say
}

// NewRateLimitError creates a rate-limit error.
func NewRateLimitError(retryAfter int) *RateLimitError {
	return &RateLimitError{
		coreError:  newCore(CodeRateLimit, "rate limit exceeded", nil),
		RetryAfter: retryAfter,
	}
}

// ServiceError reports a backend failure, carrying the HTTP status the
// backend answered with.
type ServiceError struct {
	*coreError
	Service    string
	StatusCode int
}

// NewServiceError creates a service error for the named backend.
func NewServiceError(service, message string, statusCode int) *ServiceError {
	if message == "" {
		message = "backend service error"
	}
	return &ServiceError{
		coreError:  newCore(CodeServiceUnavailable, message, nil),
		Service:    service,
		StatusCode: statusCode,
	}
}

// StorageError reports a local storage failure on a specific key.
type StorageError struct {
	*coreError
	Key string
}

// NewStorageError creates a storage error for the given key.
func NewStorageError(key, message string, cause error) *StorageError {
	if message == "" {
		message = "storage operation failed"
	}
	return &StorageError{coreError: newCore(CodeStorageError, message, cause), Key: key}
}

// InternalError covers failures that do not fit a more specific type.
type InternalError struct {
	*coreError
}

// NewInternalError creates an internal error.
func NewInternalError(message string, cause error) *InternalError {
	if message == "" {
		message = "internal error"
	}
	return &InternalError{coreError: newCore(CodeInternal, message, cause)}
}

// Wrap adds context to err. A typed error keeps its code; anything
// else becomes an InternalError. Wrap(nil, ...) is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if typed, ok := err.(Error); ok {
		return &coreError{code: typed.Code(), msg: message, cause: err, stack: callers(1)}
	}
	return &InternalError{
		coreError: &coreError{code: CodeInternal, msg: message, cause: err, stack: callers(1)},
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// New creates an internal-coded error with a captured stack.
func New(message string) error {
	return &coreError{code: CodeInternal, msg: message, stack: callers(1)}
}

// Newf is New with a formatted message.
func Newf(format string, args ...any) error {
	return New(fmt.Sprintf(format, args...))
}
