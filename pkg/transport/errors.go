package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// Sentinel errors matched by *APIError.
var (
	// ErrNotFound is returned when a resource does not exist (404).
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for rejected credentials (401, 403).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited is returned when the API throttles the caller (429).
	ErrRateLimited = errors.New("rate limited")
	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("server error")
	// ErrTokenExpired is returned before sending when the access token has expired.
	ErrTokenExpired = errors.New("access token expired")
	// ErrBodyTooLarge is returned when a response body exceeds the size limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// ErrorEnvelope is the JSON error body returned by the API.
type ErrorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error,omitempty"`
}

// APIError is a non-2xx response.
type APIError struct {
	OperationID string
	StatusCode  int
	// Code is the error field of the envelope, e.g. "Not Found".
	Code      string
	Message   string
	RequestID string
	// Detail is the error body after validation, set only when error
	// validation is enabled and succeeded.
	Detail any
	Body   []byte
	// Validation is set when error validation was enabled and the body did
	// not match its schema.
	Validation *validation.Error
}

// Error implements the error interface
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.OperationID != "" {
		return fmt.Sprintf("%s: status %d: %s", e.OperationID, e.StatusCode, msg)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, msg)
}

// Is matches the sentinel errors by status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrServer:
		return e.StatusCode >= 500
	}
	return false
}

// StatusCode returns the HTTP status of err if it is an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
