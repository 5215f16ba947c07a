package transport

import (
	"maps"
	"net/http"
	"net/url"
	"time"

	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// Meta keys set by the dispatcher.
const (
	// MetaOperationID holds the operation id.
	MetaOperationID = "operationId"
	// MetaValidation holds the resolved validation.Config of the call.
	MetaValidation = "validation"
	// MetaValidationOverride holds the *validation.Override declared by the caller.
	MetaValidationOverride = "validationOverride"
)

// Request describes a single API call.
type Request struct {
	OperationID string
	Method      string
	// Path is appended to the base URL; path parameters must already be escaped.
	Path  string
	Query url.Values
	Body  any

	RequestSchema  *schema.Key
	ResponseSchema *schema.Key
	Description    string

	// Timeout bounds the call; zero uses the client timeout.
	Timeout    time.Duration
	Validation *validation.Override
	Meta       map[string]any
}

// Clone returns a shallow copy of r with its own Meta and Query maps.
func (r *Request) Clone() *Request {
	out := *r
	if r.Meta != nil {
		out.Meta = maps.Clone(r.Meta)
	}
	if r.Query != nil {
		out.Query = url.Values(maps.Clone(map[string][]string(r.Query)))
	}
	return &out
}

// ResolvedValidation returns the validation config the dispatcher stored in
// Meta, if any.
func (r *Request) ResolvedValidation() (validation.Config, bool) {
	if r.Meta == nil {
		return validation.Config{}, false
	}
	cfg, ok := r.Meta[MetaValidation].(validation.Config)
	return cfg, ok
}

// Response is a decoded API response.
type Response struct {
	StatusCode int
	Header     http.Header
	// Data is the decoded JSON body, nil for an empty body. Numbers are
	// json.Number.
	Data any
	Raw  []byte
}
