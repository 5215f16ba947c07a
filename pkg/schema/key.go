package schema

import (
	"fmt"
	"strconv"
)

// Kind is the message direction a schema applies to.
type Kind string

// Message directions.
const (
	KindRequest  Kind = "request"
	KindResponse Kind = "response"
)

// DefaultVariant is the content variant used for JSON bodies.
const DefaultVariant = "default"

// StatusAny is the status of keys that are not bound to a status code.
const StatusAny = 0

// Key identifies a schema slot in a Registry.
type Key struct {
	OperationID string
	Kind        Kind
	Variant     string
	Status      int
}

// RequestKey returns the key of the JSON request body schema for an operation.
func RequestKey(operationID string) Key {
	return Key{OperationID: operationID, Kind: KindRequest, Variant: DefaultVariant}
}

// ResponseKey returns the key of the JSON response body schema for an
// operation and status code.
func ResponseKey(operationID string, status int) Key {
	return Key{OperationID: operationID, Kind: KindResponse, Variant: DefaultVariant, Status: status}
}

// Normalize fills the default variant.
func (k Key) Normalize() Key {
	if k.Variant == "" {
		k.Variant = DefaultVariant
	}
	return k
}

// StatusString renders the status, "any" for StatusAny.
func (k Key) StatusString() string {
	if k.Status == StatusAny {
		return "any"
	}
	return strconv.Itoa(k.Status)
}

// String renders the key for logs and error messages.
func (k Key) String() string {
	n := k.Normalize()
	return fmt.Sprintf("%s/%s/%s/%s", n.OperationID, n.Kind, n.Variant, n.StatusString())
}

// ParseKind parses "request" or "response".
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRequest, KindResponse:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("invalid schema kind %q (want request or response)", s)
	}
}
