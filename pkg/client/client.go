// Package client wires the Request API SDK together: one transport, one
// schema registry holding the built-in OpenAPI schemas, one dispatcher, and
// a facade per resource domain.
//
//	c, err := client.New(client.WithTransportOptions(transport.WithAPIKey(key)))
//	if err != nil {
//		return err
//	}
//	st, err := c.Requests.GetStatus(ctx, requestID)
package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/requestnetwork/request-api-go/pkg/clientids"
	"github.com/requestnetwork/request-api-go/pkg/config"
	"github.com/requestnetwork/request-api-go/pkg/currencies"
	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/logging"
	"github.com/requestnetwork/request-api-go/pkg/metrics"
	"github.com/requestnetwork/request-api-go/pkg/openapi"
	"github.com/requestnetwork/request-api-go/pkg/payer"
	"github.com/requestnetwork/request-api-go/pkg/payouts"
	"github.com/requestnetwork/request-api-go/pkg/requests"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/transport"
)

// Client exposes the per-domain facades.
type Client struct {
	Requests   *requests.API
	Payouts    *payouts.API
	Payer      *payer.API
	Currencies *currencies.API
	ClientIDs  *clientids.API

	transport  *transport.Client
	registry   *schema.Registry
	dispatcher *dispatch.Dispatcher
}

type options struct {
	transportOpts []transport.Option
	logger        *slog.Logger
	registry      *schema.Registry
	schemaDir     string
	skipBuiltin   bool
	metrics       *metrics.CallMetrics
}

// Option configures a Client.
type Option func(*options)

// WithTransportOptions passes options to the HTTP transport.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) {
		o.transportOpts = append(o.transportOpts, opts...)
	}
}

// WithLogger sets the logger shared by the transport, registry and
// dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry uses reg instead of a fresh registry. Built-in schemas are
// still registered into it unless WithoutBuiltinSchemas is given.
func WithRegistry(reg *schema.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithSchemaDir registers the *.schema.json files under dir after the
// built-in schemas, replacing built-ins with the same key.
func WithSchemaDir(dir string) Option {
	return func(o *options) {
		o.schemaDir = dir
	}
}

// WithMetrics records call metrics in m.
//
//	reg := metrics.NewRegistry()
//	c, err := client.New(client.WithMetrics(metrics.NewCallMetrics(reg)))
func WithMetrics(m *metrics.CallMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithoutBuiltinSchemas skips registering the embedded OpenAPI schemas.
func WithoutBuiltinSchemas() Option {
	return func(o *options) {
		o.skipBuiltin = true
	}
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	logger := logging.OrNop(o.logger)

	reg := o.registry
	if reg == nil {
		reg = schema.NewRegistry(schema.WithLogger(logger))
	}
	if !o.skipBuiltin {
		if _, err := openapi.RegisterBuiltin(context.Background(), reg); err != nil {
			return nil, fmt.Errorf("failed to register built-in schemas: %w", err)
		}
	}
	if o.schemaDir != "" {
		n, err := schema.LoadDir(reg, o.schemaDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load schemas from %s: %w", o.schemaDir, err)
		}
		logger.Debug("loaded schema directory", "dir", o.schemaDir, "schemas", n)
	}

	topts := append([]transport.Option{
		transport.WithLogger(logger),
		transport.WithErrorSchemas(reg),
	}, o.transportOpts...)
	t := transport.New(topts...)
	d := dispatch.New(t, reg, dispatch.WithLogger(logger), dispatch.WithMetrics(o.metrics))

	return &Client{
		Requests:   requests.New(d),
		Payouts:    payouts.New(d),
		Payer:      payer.New(d),
		Currencies: currencies.New(d),
		ClientIDs:  clientids.New(d),
		transport:  t,
		registry:   reg,
		dispatcher: d,
	}, nil
}

// FromConfig creates a Client from resolved configuration. Extra options are
// applied after the ones derived from cfg.
func FromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	topts := []transport.Option{
		transport.WithTimeout(cfg.TimeoutDuration()),
		transport.WithRuntimeValidation(cfg.RuntimeValidation()),
	}
	if cfg.BaseURL != "" {
		topts = append(topts, transport.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		topts = append(topts, transport.WithAPIKey(cfg.APIKey))
	}
	if cfg.ClientID != "" {
		topts = append(topts, transport.WithClientID(cfg.ClientID, cfg.Origin))
	}

	base := []Option{WithTransportOptions(topts...)}
	if cfg.SchemaDir != "" {
		base = append(base, WithSchemaDir(cfg.SchemaDir))
	}
	return New(append(base, opts...)...)
}

// Registry returns the schema registry.
func (c *Client) Registry() *schema.Registry {
	return c.registry
}

// Transport returns the HTTP transport.
func (c *Client) Transport() *transport.Client {
	return c.transport
}

// Dispatcher returns the operation dispatcher, for calling operations that
// have no facade method.
func (c *Client) Dispatcher() *dispatch.Dispatcher {
	return c.dispatcher
}
