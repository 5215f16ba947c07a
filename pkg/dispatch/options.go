package dispatch

import (
	"time"

	"github.com/requestnetwork/request-api-go/pkg/transport"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// CallOption adjusts a single call.
type CallOption func(*transport.Request)

// WithValidation overrides the validation config for the call. Repeated
// options are overlaid in order.
func WithValidation(o *validation.Override) CallOption {
	return func(r *transport.Request) {
		r.Validation = r.Validation.Overlay(o)
	}
}

// WithoutValidation turns all validation off for the call.
func WithoutValidation() CallOption {
	return WithValidation(validation.Uniform(false))
}

// WithTimeout bounds the call.
func WithTimeout(d time.Duration) CallOption {
	return func(r *transport.Request) {
		r.Timeout = d
	}
}

// WithMeta adds a metadata entry visible to the transport.
func WithMeta(key string, value any) CallOption {
	return func(r *transport.Request) {
		if r.Meta == nil {
			r.Meta = make(map[string]any)
		}
		r.Meta[key] = value
	}
}

// WithDescription sets the message used for validation failures.
func WithDescription(desc string) CallOption {
	return func(r *transport.Request) {
		r.Description = desc
	}
}

// Apply runs opts against req and returns it.
func Apply(req *transport.Request, opts ...CallOption) *transport.Request {
	for _, opt := range opts {
		if opt != nil {
			opt(req)
		}
	}
	return req
}
