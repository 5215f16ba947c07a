package payer

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
	OpCreateCompliance       = "PayerV2Controller_getComplianceData_v2"
	OpGetComplianceStatus    = "PayerV2Controller_getComplianceStatus_v2"
	OpUpdateComplianceStatus = "PayerV2Controller_updateComplianceStatus_v2"
	OpCreatePaymentDetails   = "PayerV2Controller_createPaymentDetails_v2"
	OpGetPaymentDetails      = "PayerV2Controller_getPaymentDetails_v2"
)

// API is the payer compliance facade.
type API struct {
	d *dispatch.Dispatcher
}

// New creates the payer facade.
func New(d *dispatch.Dispatcher) *API {
	return &API{d: d}
}

// CreateCompliance starts compliance for a payer and returns the KYC and
// agreement links.
func (a *API) CreateCompliance(ctx context.Context, body *ComplianceRequest, opts ...dispatch.CallOption) (*ComplianceResponse, error) {
	reqKey := schema.RequestKey(OpCreateCompliance)
	resKey := schema.ResponseKey(OpCreateCompliance, http.StatusOK)
	out, err := dispatch.Do[ComplianceResponse](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpCreateCompliance,
		Method:         http.MethodPost,
		Path:           "/v2/payer",
		Body:           dispatch.Body(body),
		RequestSchema:  &reqKey,
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetComplianceStatus returns the compliance state of a payer.
func (a *API) GetComplianceStatus(ctx context.Context, clientUserID string, opts ...dispatch.CallOption) (*ComplianceStatus, error) {
	resKey := schema.ResponseKey(OpGetComplianceStatus, http.StatusOK)
	out, err := dispatch.Do[ComplianceStatus](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpGetComplianceStatus,
		Method:         http.MethodGet,
		Path:           payerPath(clientUserID),
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComplianceStatus records whether the payer completed the agreement.
func (a *API) UpdateComplianceStatus(ctx context.Context, clientUserID string, agreementCompleted bool, opts ...dispatch.CallOption) error {
	reqKey := schema.RequestKey(OpUpdateComplianceStatus)
	return a.d.RequestVoid(ctx, dispatch.Apply(&transport.Request{
		OperationID:   OpUpdateComplianceStatus,
		Method:        http.MethodPatch,
		Path:          payerPath(clientUserID),
		Body:          complianceUpdate{AgreementCompleted: agreementCompleted},
		RequestSchema: &reqKey,
	}, opts...))
}

// CreatePaymentDetails registers a bank account for a payer.
func (a *API) CreatePaymentDetails(ctx context.Context, clientUserID string, body *PaymentDetailsRequest, opts ...dispatch.CallOption) (*PaymentDetail, error) {
	reqKey := schema.RequestKey(OpCreatePaymentDetails)
	resKey := schema.ResponseKey(OpCreatePaymentDetails, http.StatusCreated)
	out, err := dispatch.Do[paymentDetailsCreated](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpCreatePaymentDetails,
		Method:         http.MethodPost,
		Path:           payerPath(clientUserID) + "/payment-details",
		Body:           dispatch.Body(body),
		RequestSchema:  &reqKey,
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return &out.PaymentDetail, nil
}

// GetPaymentDetails lists the bank accounts registered for a payer.
func (a *API) GetPaymentDetails(ctx context.Context, clientUserID string, opts ...dispatch.CallOption) ([]PaymentDetail, error) {
	resKey := schema.ResponseKey(OpGetPaymentDetails, http.StatusOK)
	out, err := dispatch.Do[paymentDetailsList](ctx, a.d, dispatch.Apply(&transport.Request{
		OperationID:    OpGetPaymentDetails,
		Method:         http.MethodGet,
		Path:           payerPath(clientUserID) + "/payment-details",
		ResponseSchema: &resKey,
	}, opts...))
	if err != nil {
		return nil, err
	}
	return out.PaymentDetails, nil
}

func payerPath(clientUserID string) string {
	return "/v2/payer/" + url.PathEscape(clientUserID)
}
