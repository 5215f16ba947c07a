package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/requestnetwork/request-api-go/internal/id"
	"github.com/requestnetwork/request-api-go/pkg/logging"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/util"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// Defaults.
const (
	DefaultBaseURL   = "https://api.request.network"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "request-api-go"
	// MaxBodySize caps decoded response bodies.
	MaxBodySize = 10 << 20
)

// Header names.
const (
	HeaderAPIKey    = "x-api-key"
	HeaderClientID  = "x-client-id"
	HeaderOrigin    = "Origin"
	HeaderRequestID = "X-Request-Id"
)

// Client is an HTTP client for the Request API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	apiKey       string
	clientID     string
	origin       string
	accessToken  string
	userAgent    string
	timeout      time.Duration
	validation   validation.Config
	errorSchemas validation.Lookup
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAPIKey authenticates with an API key.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithClientID authenticates with a client id. Browser-style client id
// auth requires the Origin header to match an allowed domain.
func WithClientID(clientID, origin string) Option {
	return func(c *Client) {
		c.clientID = clientID
		c.origin = origin
	}
}

// WithAccessToken sends a bearer token. Its expiry is checked before every
// call.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the default per-call timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRuntimeValidation sets the client-wide validation defaults.
func WithRuntimeValidation(cfg validation.Config) Option {
	return func(c *Client) {
		c.validation = cfg
	}
}

// WithErrorSchemas sets the registry used to validate error bodies.
func WithErrorSchemas(lookup validation.Lookup) Option {
	return func(c *Client) {
		c.errorSchemas = lookup
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
		timeout:    DefaultTimeout,
		validation: validation.DefaultConfig(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrNop(c.logger)
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RuntimeValidation returns the client-wide validation defaults.
func (c *Client) RuntimeValidation() validation.Config {
	return c.validation
}

// Request performs the call described by req.
func (c *Client) Request(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if err := c.checkToken(); err != nil {
		return nil, err
	}

	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, requestID, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", req.Method, req.Path, err)
	}
	if len(raw) > MaxBodySize {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, ErrBodyTooLarge)
	}

	c.logger.Debug("api call",
		"operationId", req.OperationID,
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"requestId", requestID,
		"duration", time.Since(start),
		"body", util.TruncateBody(string(raw), 0),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(req, resp, raw, requestID)
	}

	data, err := decodeBody(resp.Header, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", req.OperationID, err)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       data,
		Raw:        raw,
	}, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, string, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req.Body); err != nil {
			return nil, "", fmt.Errorf("%s: failed to encode request body: %w", req.OperationID, err)
		}
		body = &buf
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, "", fmt.Errorf("%s: failed to build request: %w", req.OperationID, err)
	}

	requestID := id.RequestID()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set(HeaderAPIKey, c.apiKey)
	}
	if c.clientID != "" {
		httpReq.Header.Set(HeaderClientID, c.clientID)
		if c.origin != "" {
			httpReq.Header.Set(HeaderOrigin, c.origin)
		}
	}
	if c.accessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	return httpReq, requestID, nil
}

// checkToken rejects access tokens whose exp claim has passed. The signature
// is not verified; that is the server's job.
func (c *Client) checkToken() error {
	if c.accessToken == "" {
		return nil
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(c.accessToken, &claims); err != nil {
		return fmt.Errorf("invalid access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("invalid access token: %w", err)
	}
	if exp != nil && !c.now().Before(exp.Time) {
		return ErrTokenExpired
	}
	return nil
}

func (c *Client) apiError(req *Request, resp *http.Response, raw []byte, requestID string) error {
	apiErr := &APIError{
		OperationID: req.OperationID,
		StatusCode:  resp.StatusCode,
		RequestID:   requestID,
		Body:        raw,
	}
	if rid := resp.Header.Get(HeaderRequestID); rid != "" {
		apiErr.RequestID = rid
	}

	var envelope ErrorEnvelope
	if json.Unmarshal(raw, &envelope) == nil {
		apiErr.Code = envelope.Error
		apiErr.Message = envelopeMessage(envelope.Message)
	}
	if apiErr.Message == "" && len(raw) > 0 && !json.Valid(raw) {
		apiErr.Message = util.TruncateBody(strings.TrimSpace(string(raw)), 512)
	}

	cfg, ok := req.ResolvedValidation()
	if !ok {
		cfg = validation.Merge(c.validation, req.Validation)
	}
	if cfg.Errors {
		c.validateErrorBody(req, resp, raw, apiErr)
	}
	return apiErr
}

func (c *Client) validateErrorBody(req *Request, resp *http.Response, raw []byte, apiErr *APIError) {
	data, err := decodeBody(resp.Header, raw)
	if err != nil {
		c.logger.Warn("error body is not valid JSON", "operationId", req.OperationID, "status", resp.StatusCode, "error", err)
		return
	}
	out := validation.ParseWithRegistry(c.errorSchemas, validation.RegistryInput{
		Key:                 schema.ResponseKey(req.OperationID, resp.StatusCode),
		Value:               data,
		Description:         fmt.Sprintf("%s: error response %d does not match its schema", req.OperationID, resp.StatusCode),
		SkipOnMissingSchema: true,
	})
	if !out.Success {
		apiErr.Validation = out.Err
		c.logger.Warn("error response failed validation",
			"operationId", req.OperationID,
			"status", resp.StatusCode,
			"error", out.Err,
		)
		return
	}
	apiErr.Detail = out.Data
}

func envelopeMessage(m any) string {
	switch v := m.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// decodeBody decodes a JSON body. Empty bodies decode to nil; non-JSON
// content types come back as a string.
func decodeBody(header http.Header, raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	ct := header.Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "json") {
		return string(raw), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
