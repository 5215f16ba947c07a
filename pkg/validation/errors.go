package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/requestnetwork/request-api-go/pkg/schema"
)

// ErrValidation matches every *Error with errors.Is.
var ErrValidation = errors.New("validation failed")

// Error codes used in FieldError.Code.
const (
	ErrCodeSchema   = "schema"
	ErrCodeRequired = "required"
	ErrCodeType     = "type"
	ErrCodeEnum     = "enum"
	ErrCodeShape    = "shape"
)

// Locations used in FieldError.Location.
const (
	LocationBody     = "body"
	LocationResponse = "response"
)

// FieldError describes a single failing value inside a validated document.
type FieldError struct {
	// Field is the JSONPath of the failing value ($.a.b[0]); empty for the root
	Field string `json:"field,omitempty"`

	// Location is body for requests and response for responses
	Location string `json:"location"`

	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s: %s", e.Location, e.Field, e.Message)
	}
	return e.Message
}

// Error is a failed validation. Cause holds the underlying schema error, if
// any.
type Error struct {
	Message string
	Key     schema.Key
	Cause   error
	Issues  []*FieldError
}

// NewError creates an Error without a cause.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	switch len(e.Issues) {
	case 0:
		if e.Cause != nil {
			sb.WriteString(": ")
			sb.WriteString(e.Cause.Error())
		}
	case 1:
		sb.WriteString(": ")
		sb.WriteString(e.Issues[0].Error())
	default:
		fmt.Fprintf(&sb, ": %d issues, first: %s", len(e.Issues), e.Issues[0].Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrValidation.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}
