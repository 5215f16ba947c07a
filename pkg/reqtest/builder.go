package reqtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MockBuilder configures one mock using a fluent API.
type MockBuilder struct {
	server *Server
	mock   *mockEntry
	err    error // first error encountered during building
}

// setError records the first error encountered during building.
func (b *MockBuilder) setError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns any error encountered during building.
func (b *MockBuilder) Err() error {
	return b.err
}

func (b *MockBuilder) header(key, value string) {
	if b.mock.headers == nil {
		b.mock.headers = make(map[string]string)
	}
	b.mock.headers[key] = value
}

// WithStatus sets the HTTP response status code.
// Default is 200 (OK).
func (b *MockBuilder) WithStatus(status int) *MockBuilder {
	b.mock.status = status
	return b
}

// WithBody sets the response body. Strings and byte slices are sent as
// they are; other values are JSON encoded.
func (b *MockBuilder) WithBody(body any) *MockBuilder {
	switch v := body.(type) {
	case string:
		b.mock.body = []byte(v)
	case []byte:
		b.mock.body = v
	default:
		return b.WithJSON(v)
	}
	return b
}

// WithJSON sets the response body as JSON.
// Automatically sets Content-Type to application/json.
func (b *MockBuilder) WithJSON(body any) *MockBuilder {
	data, err := json.Marshal(body)
	if err != nil {
		b.setError(fmt.Errorf("WithJSON: failed to marshal body: %w", err))
		b.mock.body = nil
	} else {
		b.mock.body = data
	}
	b.header("Content-Type", "application/json")
	return b
}

// WithHeader adds a response header.
func (b *MockBuilder) WithHeader(key, value string) *MockBuilder {
	b.header(key, value)
	return b
}

// WithHeaders sets multiple response headers at once.
func (b *MockBuilder) WithHeaders(headers map[string]string) *MockBuilder {
	for k, v := range headers {
		b.header(k, v)
	}
	return b
}

// WithDelay delays the response.
func (b *MockBuilder) WithDelay(d time.Duration) *MockBuilder {
	b.mock.delay = d
	return b
}

// WithQueryParam matches requests with a specific query parameter.
func (b *MockBuilder) WithQueryParam(key, value string) *MockBuilder {
	if b.mock.queryParams == nil {
		b.mock.queryParams = make(map[string]string)
	}
	b.mock.queryParams[key] = value
	return b
}

// WithRequestHeader matches requests with a specific header.
func (b *MockBuilder) WithRequestHeader(key, value string) *MockBuilder {
	if b.mock.requestHeaders == nil {
		b.mock.requestHeaders = make(map[string]string)
	}
	b.mock.requestHeaders[key] = value
	return b
}

// Times sets how many times this mock should match.
// Use 0 for unlimited matches (default).
func (b *MockBuilder) Times(n int) *MockBuilder {
	b.mock.times = n
	return b
}

// Once is a convenience method for Times(1).
func (b *MockBuilder) Once() *MockBuilder {
	return b.Times(1)
}

// Build registers the mock and returns the server.
func (b *MockBuilder) Build() *Server {
	if b.err != nil {
		b.server.t.Errorf("reqtest: %v", b.err)
	}
	b.server.addMock(b.mock)
	return b.server
}

// Reply is an alias for Build.
// More readable in fluent chains:
//
//	api.Mock("GET", "/v2/currencies").RespondJSON(list).Reply()
func (b *MockBuilder) Reply() {
	b.Build()
}

// RespondJSON is a shorthand for JSON response with status 200.
func (b *MockBuilder) RespondJSON(body any) *MockBuilder {
	return b.WithStatus(http.StatusOK).WithJSON(body)
}

// RespondCreated configures a 201 Created JSON response.
func (b *MockBuilder) RespondCreated(body any) *MockBuilder {
	return b.WithStatus(http.StatusCreated).WithJSON(body)
}

// RespondError configures an error response in the API's envelope.
func (b *MockBuilder) RespondError(status int, message string) *MockBuilder {
	return b.WithStatus(status).WithJSON(map[string]any{
		"statusCode": status,
		"message":    message,
		"error":      http.StatusText(status),
	})
}

// RespondNotFound configures a 404 Not Found response.
func (b *MockBuilder) RespondNotFound(message string) *MockBuilder {
	return b.RespondError(http.StatusNotFound, message)
}

// RespondUnauthorized configures a 401 Unauthorized response.
func (b *MockBuilder) RespondUnauthorized() *MockBuilder {
	return b.RespondError(http.StatusUnauthorized, "Unauthorized")
}

// RespondNoContent configures an empty 200 response, as used by the API's
// update endpoints.
func (b *MockBuilder) RespondNoContent() *MockBuilder {
	return b.WithStatus(http.StatusOK)
}
