// Package currencies lists the tokens the Request API supports and the
// conversion routes between them.
package currencies

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/transport"
)

// Operation ids.
const (
	OpList                = "CurrenciesV2Controller_getNetworkTokens_v2"
	OpGetConversionRoutes = "CurrenciesV2Controller_getConversionRoutes_v2"
)

// Currency is a supported token or fiat currency.
type Currency struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals,omitempty"`
	Address  string `json:"address,omitempty"`
	Network  string `json:"network,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Filter narrows List. Empty fields are not sent.
type Filter struct {
	Network string
	Symbol  string
	ID      string
	// FirstOnly returns only the first match.
	FirstOnly bool
}

// ConversionRoutes lists the currencies a currency can be paid with.
type ConversionRoutes struct {
	CurrencyID       string     `json:"currencyId"`
	Network          string     `json:"network,omitempty"`
	ConversionRoutes []Currency `json:"conversionRoutes"`
}

// API is the currencies facade.
type API struct {
	d *dispatch.Dispatcher
}

// New creates the currencies facade.
func New(d *dispatch.Dispatcher) *API {
	return &API{d: d}
}

// List returns the supported currencies matching f. A nil filter lists all.
func (a *API) List(ctx context.Context, f *Filter, opts ...dispatch.CallOption) ([]Currency, error) {
	resKey := schema.ResponseKey(OpList, http.StatusOK)
	return dispatch.Do[[]Currency](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpList,
		Method:         http.MethodGet,
		Path:           "/v2/currencies",
		Query:          f.query(),
		ResponseSchema: &resKey,
	}, opts...))
}

// GetConversionRoutes returns the currencies currencyID can be converted
// from. network is optional.
func (a *API) GetConversionRoutes(ctx context.Context, currencyID, network string, opts ...dispatch.CallOption) (*ConversionRoutes, error) {
	resKey := schema.ResponseKey(OpGetConversionRoutes, http.StatusOK)
	var q url.Values
	if network != "" {
		q = url.Values{"network": {network}}
	}
	out, err := dispatch.Do[ConversionRoutes](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpGetConversionRoutes,
		Method:         http.MethodGet,
		Path:           "/v2/currencies/" + url.PathEscape(currencyID) + "/conversion-routes",
		Query:          q,
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *Filter) query() url.Values {
	if f == nil {
		return nil
	}
	q := url.Values{}
	if f.Network != "" {
		q.Set("network", f.Network)
	}
	if f.Symbol != "" {
		q.Set("symbol", f.Symbol)
	}
	if f.ID != "" {
		q.Set("id", f.ID)
	}
	if f.FirstOnly {
		q.Set("firstOnly", strconv.FormatBool(true))
	}
	return q
}
