package requests

import (
	"context"
	"net/http"
	"net/url"

	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/transport"
)

// Operation ids.
const (
	OpCreate             = "RequestControllerV2_createRequest_v2"
	OpGetStatus          = "RequestControllerV2_getRequestStatus_v2"
	OpGetPaymentCalldata = "RequestControllerV2_getPaymentCalldata_v2"
	OpGetPaymentRoutes   = "RequestControllerV2_getRequestPaymentRoutes_v2"
	OpSendPaymentIntent  = "RequestControllerV2_sendPaymentIntent_v2"
	OpUpdate             = "RequestControllerV2_updateRequest_v2"
)

// API is the requests facade.
type API struct {
	d *dispatch.Dispatcher
}

// New creates the requests facade.
func New(d *dispatch.Dispatcher) *API {
	return &API{d: d}
}

// Create creates a payment request.
func (a *API) Create(ctx context.Context, body *CreateRequest, opts ...dispatch.CallOption) (*CreateResponse, error) {
	reqKey := schema.RequestKey(OpCreate)
	resKey := schema.ResponseKey(OpCreate, http.StatusCreated)
	out, err := dispatch.Do[CreateResponse](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpCreate,
		Method:         http.MethodPost,
		Path:           "/v2/request",
		Body:           dispatch.Body(body),
		RequestSchema:  &reqKey,
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStatus returns the status of a request with its normalized kind.
func (a *API) GetStatus(ctx context.Context, requestID string, opts ...dispatch.CallOption) (*RequestStatus, error) {
	resKey := schema.ResponseKey(OpGetStatus, http.StatusOK)
	payload, err := dispatch.Do[StatusPayload](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpGetStatus,
		Method:         http.MethodGet,
		Path:           "/v2/request/" + url.PathEscape(requestID),
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return NewRequestStatus(payload), nil
}

// GetPaymentCalldata returns the calldata or payment intent needed to pay a
// request.
func (a *API) GetPaymentCalldata(ctx context.Context, requestID string, params *PayParams, opts ...dispatch.CallOption) (*PaymentInstructions, error) {
	resKey := schema.ResponseKey(OpGetPaymentCalldata, http.StatusOK)
	data, err := a.d.RequestJSON(ctx, dispatch.Apply(&transport.Request{
		OperationID:    OpGetPaymentCalldata,
		Method:         http.MethodGet,
		Path:           "/v2/request/" + url.PathEscape(requestID) + "/pay",
		Query:          params.query(),
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return DiscriminatePayment(data)
}

// GetPaymentRoutes lists the routes available to pay a request.
func (a *API) GetPaymentRoutes(ctx context.Context, requestID string, params *RouteParams, opts ...dispatch.CallOption) (*Routes, error) {
	resKey := schema.ResponseKey(OpGetPaymentRoutes, http.StatusOK)
	out, err := dispatch.Do[Routes](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpGetPaymentRoutes,
		Method:         http.MethodGet,
		Path:           "/v2/request/" + url.PathEscape(requestID) + "/routes",
		Query:          params.query(),
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SendPaymentIntent submits a signed payment intent.
func (a *API) SendPaymentIntent(ctx context.Context, paymentIntentID string, body *SendPaymentIntentRequest, opts ...dispatch.CallOption) error {
	reqKey := schema.RequestKey(OpSendPaymentIntent)
	return a.d.RequestVoid(ctx, dispatch.Apply(&transport.Request{
		OperationID:   OpSendPaymentIntent,
		Method:        http.MethodPost,
		Path:          "/v2/request/payment-intents/" + url.PathEscape(paymentIntentID),
		Body:          dispatch.Body(body),
		RequestSchema: &reqKey,
	}, opts...))
}

// UpdateRecurrence stops or resumes a recurring request.
func (a *API) UpdateRecurrence(ctx context.Context, requestID string, stopped bool, opts ...dispatch.CallOption) error {
	reqKey := schema.RequestKey(OpUpdate)
	return a.d.RequestVoid(ctx, dispatch.Apply(&transport.Request{
		OperationID:   OpUpdate,
		Method:        http.MethodPatch,
		Path:          "/v2/request/" + url.PathEscape(requestID),
		Body:          updateRequest{IsRecurrenceStopped: stopped},
		RequestSchema: &reqKey,
	}, opts...))
}

func (p *PayParams) query() url.Values {
	if p == nil {
		return nil
	}
	q := url.Values{}
	setIf(q, "wallet", p.Wallet)
	setIf(q, "chain", p.Chain)
	setIf(q, "token", p.Token)
	setIf(q, "clientUserId", p.ClientUserID)
	setIf(q, "paymentDetailsId", p.PaymentDetailsID)
	setIf(q, "feePercentage", p.FeePercentage)
	setIf(q, "feeAddress", p.FeeAddress)
	return q
}

func (p *RouteParams) query() url.Values {
	if p == nil {
		return nil
	}
	q := url.Values{}
	setIf(q, "wallet", p.Wallet)
	setIf(q, "amount", p.Amount)
	setIf(q, "feePercentage", p.FeePercentage)
	setIf(q, "feeAddress", p.FeeAddress)
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
