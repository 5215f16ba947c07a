package payouts

import (
	"context"
	"net/http"
	"net/url"

	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/requests"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/transport"
)

// Operation ids.
const (
	OpCreate                   = "PayoutV2Controller_payRequest_v2"
	OpCreateBatch              = "PayoutV2Controller_payBatchRequest_v2"
	OpGetRecurringStatus       = "PayoutV2Controller_getRecurringPaymentStatus_v2"
	OpSubmitRecurringSignature = "PayoutV2Controller_submitRecurringPaymentSignature_v2"
	OpUpdateRecurring          = "PayoutV2Controller_updateRecurringPayment_v2"
)

// API is the payouts facade.
type API struct {
	d *dispatch.Dispatcher
}

// New creates the payouts facade.
func New(d *dispatch.Dispatcher) *API {
	return &API{d: d}
}

// Create creates a request and returns the calldata or payment intent paying it.
func (a *API) Create(ctx context.Context, body *Request, opts ...dispatch.CallOption) (*requests.PaymentInstructions, error) {
	reqKey := schema.RequestKey(OpCreate)
	resKey := schema.ResponseKey(OpCreate, http.StatusCreated)
	data, err := a.d.RequestJSON(ctx, dispatch.Apply(&transport.Request{
		OperationID:    OpCreate,
		Method:         http.MethodPost,
		Path:           "/v2/payouts",
		Body:           dispatch.Body(body),
		RequestSchema:  &reqKey,
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return requests.DiscriminatePayment(data)
}

// CreateBatch pays several requests in one batch.
func (a *API) CreateBatch(ctx context.Context, body *BatchRequest, opts ...dispatch.CallOption) (*BatchResponse, error) {
	reqKey := schema.RequestKey(OpCreateBatch)
	resKey := schema.ResponseKey(OpCreateBatch, http.StatusCreated)
	out, err := dispatch.Do[BatchResponse](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpCreateBatch,
		Method:         http.MethodPost,
		Path:           "/v2/payouts/batch",
		Body:           dispatch.Body(body),
		RequestSchema:  &reqKey,
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecurringStatus returns the state of a recurring payment.
func (a *API) GetRecurringStatus(ctx context.Context, id string, opts ...dispatch.CallOption) (*RecurringStatus, error) {
	resKey := schema.ResponseKey(OpGetRecurringStatus, http.StatusOK)
	out, err := dispatch.Do[RecurringStatus](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpGetRecurringStatus,
		Method:         http.MethodGet,
		Path:           recurringPath(id),
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitRecurringSignature activates a recurring payment with the payer's
// permit signature.
func (a *API) SubmitRecurringSignature(ctx context.Context, id, permitSignature string, opts ...dispatch.CallOption) error {
	reqKey := schema.RequestKey(OpSubmitRecurringSignature)
	return a.d.RequestVoid(ctx, dispatch.Apply(&transport.Request{
		OperationID:   OpSubmitRecurringSignature,
		Method:        http.MethodPost,
		Path:          recurringPath(id),
		Body:          recurringSignature{PermitSignature: permitSignature},
		RequestSchema: &reqKey,
	}, opts...))
}

// UpdateRecurring cancels or unapproves a recurring payment and returns the
// transactions the payer must execute.
func (a *API) UpdateRecurring(ctx context.Context, id string, action RecurringAction, opts ...dispatch.CallOption) (*TransactionList, error) {
	reqKey := schema.RequestKey(OpUpdateRecurring)
	resKey := schema.ResponseKey(OpUpdateRecurring, http.StatusOK)
	out, err := dispatch.Do[TransactionList](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpUpdateRecurring,
		Method:         http.MethodPatch,
		Path:           recurringPath(id),
		Body:           recurringUpdate{Action: action},
		RequestSchema:  &reqKey,
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func recurringPath(id string) string {
	return "/v2/payouts/recurring/" + url.PathEscape(id)
}
