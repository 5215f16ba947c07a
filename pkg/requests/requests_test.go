package requests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/openapi"
	"github.com/requestnetwork/request-api-go/pkg/reqtest"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/transport"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

func newAPI(t *testing.T, srv *reqtest.Server) *API {
	t.Helper()
	reg := schema.NewRegistry()
	_, err := openapi.RegisterBuiltin(context.Background(), reg)
	require.NoError(t, err)
	tr := transport.New(transport.WithBaseURL(srv.Start()), transport.WithAPIKey("test-key"), transport.WithErrorSchemas(reg))
	return New(dispatch.New(tr, reg))
}

func TestCreate(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("POST", "/v2/request").
		RespondCreated(map[string]any{"requestId": "req-1", "paymentReference": "0xref"}).
		Reply()
	api := newAPI(t, srv)

	res, err := api.Create(context.Background(), &CreateRequest{
		Payee:           "0xpayee",
		Amount:          "10",
		InvoiceCurrency: "USD",
		PaymentCurrency: "USDC-sepolia",
	})
	require.NoError(t, err)
	assert.Equal(t, &CreateResponse{RequestID: "req-1", PaymentReference: "0xref"}, res)

	log := srv.LastRequest(t, "POST", "/v2/request")
	log.AssertHeader(t, "x-api-key", "test-key")
	log.AssertJSONBody(t, map[string]any{
		"payee":                   "0xpayee",
		"amount":                  "10",
		"invoiceCurrency":         "USD",
		"paymentCurrency":         "USDC-sepolia",
		"isCryptoToFiatAvailable": false,
	})
}

func TestCreate_InvalidBodyNeverSent(t *testing.T) {
	srv := reqtest.New(t)
	api := newAPI(t, srv)

	_, err := api.Create(context.Background(), &CreateRequest{InvoiceCurrency: "USD", PaymentCurrency: "ETH"})
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrValidation)
	srv.AssertNotCalled(t, "POST", "/v2/request")

	_, err = api.Create(context.Background(), &CreateRequest{InvoiceCurrency: "USD", PaymentCurrency: "ETH"},
		dispatch.WithValidation(&validation.Override{Requests: validation.Bool(false)}))
	require.Error(t, err, "the fake server has no mock and answers 404")
	assert.ErrorIs(t, err, transport.ErrNotFound)
	srv.AssertCalled(t, "POST", "/v2/request")
}

func TestCreate_NilBodySendsNoBody(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("POST", "/v2/request").RespondCreated(map[string]any{"requestId": "req-1"}).Reply()
	api := newAPI(t, srv)

	_, err := api.Create(context.Background(), nil, dispatch.WithoutValidation())
	require.NoError(t, err)
	assert.Empty(t, srv.LastRequest(t, "POST", "/v2/request").Body)
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    StatusKind
	}{
		{"paid flag wins", map[string]any{"hasBeenPaid": true, "status": "pending"}, StatusPaid},
		{"expired", map[string]any{"hasBeenPaid": false, "status": "Expired"}, StatusOverdue},
		{"unmapped", map[string]any{"hasBeenPaid": false, "status": "weird_unmapped"}, StatusUnknown},
		{"absent", map[string]any{"hasBeenPaid": false}, StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := reqtest.New(t)
			srv.Mock("GET", "/v2/request/{requestId}").RespondJSON(tt.payload).Reply()
			api := newAPI(t, srv)

			got, err := api.GetStatus(context.Background(), "req-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.payload["hasBeenPaid"], got.HasBeenPaid)
		})
	}
}

func TestGetStatus_NotFound(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("GET", "/v2/request/{requestId}").RespondNotFound("Request not found").Reply()
	api := newAPI(t, srv)

	_, err := api.GetStatus(context.Background(), "missing", dispatch.WithValidation(&validation.Override{Errors: validation.Bool(true)}))
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrNotFound)

	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Request not found", apiErr.Message)
	assert.NotNil(t, apiErr.Detail, "404 error body validated against the document")
	assert.Nil(t, apiErr.Validation)
}

func TestGetStatus_ResponseRejected(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("GET", "/v2/request/{requestId}").RespondJSON(map[string]any{"status": "paid"}).Reply()
	api := newAPI(t, srv)

	_, err := api.GetStatus(context.Background(), "req-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrValidation)

	got, err := api.GetStatus(context.Background(), "req-1", dispatch.WithoutValidation())
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, got.Kind)
}

func TestGetPaymentCalldata(t *testing.T) {
	t.Run("calldata", func(t *testing.T) {
		srv := reqtest.New(t)
		srv.Mock("GET", "/v2/request/{requestId}/pay").RespondJSON(map[string]any{
			"transactions": []any{
				map[string]any{"data": "0xapprove", "to": "0xtoken", "value": map[string]any{"type": "BigNumber", "hex": "0x00"}},
				map[string]any{"data": "0xpay", "to": "0xproxy", "value": map[string]any{"type": "BigNumber", "hex": "0x00"}},
			},
			"metadata": map[string]any{"stepsRequired": 2, "needsApproval": true, "approvalTransactionIndex": 0, "hasEnoughBalance": true, "hasEnoughGas": true},
		}).Reply()
		api := newAPI(t, srv)

		got, err := api.GetPaymentCalldata(context.Background(), "req-1", &PayParams{Wallet: "0xpayer", Chain: "sepolia"})
		require.NoError(t, err)
		require.Equal(t, KindCalldata, got.Kind)
		require.NotNil(t, got.Calldata)
		assert.Nil(t, got.Intent)
		assert.Len(t, got.Calldata.Transactions, 2)
		require.NotNil(t, got.Calldata.Metadata.ApprovalTransactionIndex)
		assert.Equal(t, 0, *got.Calldata.Metadata.ApprovalTransactionIndex)
		assert.Equal(t, 2, got.Calldata.Metadata.StepsRequired)

		log := srv.LastRequest(t, "GET", "/v2/request/req-1/pay")
		log.AssertQueryParam(t, "wallet", "0xpayer")
		log.AssertQueryParam(t, "chain", "sepolia")
	})

	t.Run("payment intent", func(t *testing.T) {
		srv := reqtest.New(t)
		srv.Mock("GET", "/v2/request/{requestId}/pay").RespondJSON(map[string]any{
			"paymentIntentId": "pi_1",
			"paymentIntent":   "{\"domain\":{}}",
			"metadata":        map[string]any{"supportsEIP2612": true},
		}).Reply()
		api := newAPI(t, srv)

		got, err := api.GetPaymentCalldata(context.Background(), "req-1", nil)
		require.NoError(t, err)
		require.Equal(t, KindPaymentIntent, got.Kind)
		assert.Equal(t, "pi_1", got.Intent.PaymentIntentID)
		assert.True(t, got.Intent.Metadata.SupportsEIP2612)
	})

	t.Run("neither shape", func(t *testing.T) {
		srv := reqtest.New(t)
		srv.Mock("GET", "/v2/request/{requestId}/pay").RespondJSON(map[string]any{"foo": 1}).Reply()
		api := newAPI(t, srv)

		_, err := api.GetPaymentCalldata(context.Background(), "req-1", nil, dispatch.WithoutValidation())
		require.Error(t, err)
		assert.ErrorIs(t, err, validation.ErrValidation)
		assert.Contains(t, err.Error(), "neither calldata nor payment intent")
	})
}

func TestGetPaymentRoutes(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("GET", "/v2/request/{requestId}/routes").RespondJSON(map[string]any{
		"routes": []any{
			map[string]any{"id": "REQUEST_NETWORK_PAYMENT", "fee": 0, "speed": "FAST", "chain": "SEPOLIA", "token": "USDC"},
			map[string]any{"id": "crosschain-1", "fee": 0.25, "speed": 300, "price_impact": 0.01},
		},
	}).Reply()
	api := newAPI(t, srv)

	got, err := api.GetPaymentRoutes(context.Background(), "req-1", &RouteParams{Wallet: "0xpayer", Amount: "10"})
	require.NoError(t, err)
	require.Len(t, got.Routes, 2)
	assert.Equal(t, "REQUEST_NETWORK_PAYMENT", got.Routes[0].ID)
	assert.InDelta(t, 0.25, got.Routes[1].Fee, 1e-9)

	log := srv.LastRequest(t, "GET", "/v2/request/req-1/routes")
	log.AssertQueryParam(t, "amount", "10")
}

func TestSendPaymentIntent(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("POST", "/v2/request/payment-intents/{id}").RespondNoContent().Reply()
	api := newAPI(t, srv)

	body := &SendPaymentIntentRequest{SignedPaymentIntent: SignedData{Signature: "0xsig", Nonce: "1", Deadline: "1700000000"}}
	require.NoError(t, api.SendPaymentIntent(context.Background(), "pi_1", body))

	log := srv.LastRequest(t, "POST", "/v2/request/payment-intents/pi_1")
	log.AssertJSONField(t, "signedPaymentIntent.signature", "0xsig")

	err := api.SendPaymentIntent(context.Background(), "pi_1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrValidation)
	srv.AssertCalledTimes(t, "POST", "/v2/request/payment-intents/{id}", 1)
}

func TestUpdateRecurrence(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("PATCH", "/v2/request/{requestId}").WithStatus(http.StatusOK).Reply()
	api := newAPI(t, srv)

	require.NoError(t, api.UpdateRecurrence(context.Background(), "req-1", true))
	srv.LastRequest(t, "PATCH", "/v2/request/req-1").AssertJSONBody(t, `{"isRecurrenceStopped": true}`)
}

func TestPathEscaping(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("GET", "/v2/request/{requestId}").RespondJSON(map[string]any{"hasBeenPaid": false}).Reply()
	api := newAPI(t, srv)

	_, err := api.GetStatus(context.Background(), "a/b")
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrNotFound)
	srv.AssertCalled(t, "GET", "/v2/request/a/b")
}
