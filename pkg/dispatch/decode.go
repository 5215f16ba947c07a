package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/requestnetwork/request-api-go/pkg/transport"
)

// Decode converts a generic JSON value into T.
func Decode[T any](v any) (T, error) {
	var out T
	if v == nil {
		return out, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("failed to encode value: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode %T: %w", out, err)
	}
	return out, nil
}

// Body returns p as a request body, or an untyped nil when p is nil so the
// call is sent without a body.
func Body[T any](p *T) any {
	if p == nil {
		return nil
	}
	return p
}

// Do runs RequestJSON and decodes the result into T.
func Do[T any](ctx context.Context, d *Dispatcher, req *transport.Request) (T, error) {
	data, err := d.RequestJSON(ctx, req)
	if err != nil {
		var zero T
		return zero, err
	}
	out, err := Decode[T](data)
	if err != nil {
		return out, fmt.Errorf("%s: %w", req.OperationID, err)
	}
	return out, nil
}
