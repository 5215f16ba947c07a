package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/requestnetwork/request-api-go/pkg/logging"
	"github.com/requestnetwork/request-api-go/pkg/metrics"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/transport"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// Transport is what the dispatcher needs from the HTTP layer.
// *transport.Client implements it.
type Transport interface {
	Request(ctx context.Context, req *transport.Request) (*transport.Response, error)
	RuntimeValidation() validation.Config
}

// Dispatcher validates and sends operations.
type Dispatcher struct {
	transport Transport
	registry  validation.Lookup
	logger    *slog.Logger
	metrics   *metrics.CallMetrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics records call metrics in m.
func WithMetrics(m *metrics.CallMetrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// New creates a Dispatcher over t using reg for schema lookups.
func New(t Transport, reg validation.Lookup, opts ...Option) *Dispatcher {
	d := &Dispatcher{transport: t, registry: reg}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.OrNop(d.logger)
	return d
}

// Transport returns the underlying transport.
func (d *Dispatcher) Transport() Transport {
	return d.transport
}

// RequestJSON sends req and returns the response body, validated when
// response validation is enabled.
func (d *Dispatcher) RequestJSON(ctx context.Context, req *transport.Request) (any, error) {
	start := time.Now()
	prepared, cfg, err := d.prepare(req)
	if err != nil {
		d.observe(req, start, err)
		return nil, err
	}

	res, err := d.transport.Request(ctx, prepared)
	if err != nil {
		d.logFailure(prepared, cfg, start, err)
		return nil, err
	}

	if !cfg.Responses {
		d.logDone(prepared, cfg, start, res.StatusCode)
		return res.Data, nil
	}

	key := schema.ResponseKey(prepared.OperationID, res.StatusCode)
	if prepared.ResponseSchema != nil {
		key = *prepared.ResponseSchema
	}
	out := validation.ParseWithRegistry(d.registry, validation.RegistryInput{
		Key:         key,
		Value:       res.Data,
		Description: describe(prepared, "response"),
	})
	if !out.Success {
		d.metrics.ValidationFailed(prepared.OperationID, metrics.DirectionResponse)
		d.logFailure(prepared, cfg, start, out.Err)
		return nil, out.Err
	}

	d.logDone(prepared, cfg, start, res.StatusCode)
	return out.Data, nil
}

// RequestVoid sends req and discards the response body.
func (d *Dispatcher) RequestVoid(ctx context.Context, req *transport.Request) error {
	start := time.Now()
	prepared, cfg, err := d.prepare(req)
	if err != nil {
		d.observe(req, start, err)
		return err
	}

	res, err := d.transport.Request(ctx, prepared)
	if err != nil {
		d.logFailure(prepared, cfg, start, err)
		return err
	}
	d.logDone(prepared, cfg, start, res.StatusCode)
	return nil
}

// prepare resolves the validation config, validates the request body and
// fills Meta. The caller's request is not modified.
func (d *Dispatcher) prepare(req *transport.Request) (*transport.Request, validation.Config, error) {
	if req == nil {
		return nil, validation.Config{}, fmt.Errorf("nil request")
	}
	out := req.Clone()
	cfg := validation.Merge(d.transport.RuntimeValidation(), out.Validation)

	if cfg.Requests && out.RequestSchema != nil && out.Body != nil {
		res := validation.ParseWithRegistry(d.registry, validation.RegistryInput{
			Key:                 *out.RequestSchema,
			Value:               out.Body,
			Description:         describe(out, "request"),
			SkipOnMissingSchema: true,
		})
		if !res.Success {
			d.metrics.ValidationFailed(out.OperationID, metrics.DirectionRequest)
			d.logger.Debug("request body rejected", "operationId", out.OperationID, "error", res.Err)
			return nil, cfg, res.Err
		}
		out.Body = res.Data
	}

	meta := make(map[string]any, len(out.Meta)+3)
	for k, v := range out.Meta {
		meta[k] = v
	}
	meta[transport.MetaOperationID] = out.OperationID
	meta[transport.MetaValidation] = cfg
	meta[transport.MetaValidationOverride] = out.Validation
	out.Meta = meta

	return out, cfg, nil
}

func describe(req *transport.Request, kind string) string {
	if req.Description != "" {
		return req.Description
	}
	return fmt.Sprintf("%s validation failed for %s", kind, req.OperationID)
}

func (d *Dispatcher) logDone(req *transport.Request, cfg validation.Config, start time.Time, status int) {
	d.observe(req, start, nil)
	d.logger.Debug("operation done",
		"operationId", req.OperationID,
		"status", status,
		"validation", cfg.String(),
		"duration", time.Since(start),
	)
}

func (d *Dispatcher) logFailure(req *transport.Request, cfg validation.Config, start time.Time, err error) {
	d.observe(req, start, err)
	d.logger.Debug("operation failed",
		"operationId", req.OperationID,
		"validation", cfg.String(),
		"duration", time.Since(start),
		"error", err,
	)
}

// observe records the call in the metrics, if any. req may be nil.
func (d *Dispatcher) observe(req *transport.Request, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	op := ""
	if req != nil {
		op = req.OperationID
	}
	d.metrics.ObserveCall(op, outcome(err), time.Since(start))
}

func outcome(err error) string {
	var apiErr *transport.APIError
	var valErr *validation.Error
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPIError
	case errors.As(err, &valErr):
		if valErr.Key.Kind == schema.KindRequest {
			return metrics.OutcomeInvalidRequest
		}
		return metrics.OutcomeInvalidResponse
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}
