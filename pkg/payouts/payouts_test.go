package payouts

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/openapi"
	"github.com/requestnetwork/request-api-go/pkg/reqtest"
	"github.com/requestnetwork/request-api-go/pkg/requests"
	"github.com/requestnetwork/request-api-go/pkg/schema"
	"github.com/requestnetwork/request-api-go/pkg/transport"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

func newAPI(t *testing.T, srv *reqtest.Server) *API {
	t.Helper()
	reg := schema.NewRegistry()
	_, err := openapi.RegisterBuiltin(context.Background(), reg)
	require.NoError(t, err)
	return New(dispatch.New(transport.New(transport.WithBaseURL(srv.Start())), reg))
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		response map[string]any
		wantKind requests.PaymentKind
	}{
		{
			name: "calldata",
			response: map[string]any{
				"requestId":    "req-1",
				"transactions": []any{map[string]any{"data": "0xpay", "to": "0xproxy", "value": "0"}},
			},
			wantKind: requests.KindCalldata,
		},
		{
			name:     "payment intent",
			response: map[string]any{"requestId": "req-1", "paymentIntentId": "pi_1", "paymentIntent": "{}"},
			wantKind: requests.KindPaymentIntent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := reqtest.New(t)
			srv.Mock("POST", "/v2/payouts").RespondCreated(tt.response).Reply()
			api := newAPI(t, srv)

			got, err := api.Create(context.Background(), &Request{
				Payee:           "0xpayee",
				Amount:          "25",
				InvoiceCurrency: "USD",
				PaymentCurrency: "USDC-base",
				PayerWallet:     "0xpayer",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)

			srv.LastRequest(t, "POST", "/v2/payouts").AssertJSONField(t, "payerWallet", "0xpayer")
		})
	}
}

func TestCreate_Recurrence(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("POST", "/v2/payouts").RespondCreated(map[string]any{"transactions": []any{}}).Reply()
	api := newAPI(t, srv)

	body := &Request{
		Payee:           "0xpayee",
		Amount:          "25",
		InvoiceCurrency: "USD",
		PaymentCurrency: "USDC-base",
		Recurrence:      &Recurrence{StartDate: "2026-11-01", Frequency: "MONTHLY", TotalPayments: 0, Payer: "0xpayer"},
	}
	_, err := api.Create(context.Background(), body)
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrValidation)
	srv.AssertNotCalled(t, "POST", "/v2/payouts")

	body.Recurrence.TotalPayments = 12
	got, err := api.Create(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, requests.KindCalldata, got.Kind)
	srv.LastRequest(t, "POST", "/v2/payouts").AssertJSONField(t, "recurrence.totalPayments", float64(12))
}

func TestCreate_UnknownShape(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("POST", "/v2/payouts").RespondCreated(map[string]any{"requestId": "req-1"}).Reply()
	api := newAPI(t, srv)

	body := &Request{Payee: "0xpayee", Amount: "1", InvoiceCurrency: "USD", PaymentCurrency: "ETH-sepolia"}
	_, err := api.Create(context.Background(), body)
	require.Error(t, err, "the response fails the anyOf schema")
	assert.ErrorIs(t, err, validation.ErrValidation)

	_, err = api.Create(context.Background(), body, dispatch.WithValidation(validation.Uniform(false)))
	require.Error(t, err, "the discriminator rejects it without schemas")
	assert.Contains(t, err.Error(), "neither calldata nor payment intent")
}

func TestCreateBatch(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("POST", "/v2/payouts/batch").RespondCreated(map[string]any{
		"ERC20ApprovalTransactions":    []any{map[string]any{"data": "0xapprove", "to": "0xtoken"}},
		"ERC20BatchPaymentTransaction": map[string]any{"data": "0xbatch", "to": "0xbatcher"},
	}).Reply()
	api := newAPI(t, srv)

	got, err := api.CreateBatch(context.Background(), &BatchRequest{RequestIDs: []string{"req-1", "req-2"}, Payer: "0xpayer"})
	require.NoError(t, err)
	require.Len(t, got.ERC20ApprovalTransactions, 1)
	require.NotNil(t, got.ERC20BatchPaymentTransaction)
	assert.Equal(t, "0xbatch", got.ERC20BatchPaymentTransaction.Data)
	assert.Nil(t, got.ETHBatchPaymentTransaction)

	srv.LastRequest(t, "POST", "/v2/payouts/batch").AssertJSONBody(t, `{"requestIds":["req-1","req-2"],"payer":"0xpayer"}`)
}

func TestRecurring(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("GET", "/v2/payouts/recurring/{id}").RespondJSON(map[string]any{
		"status":           "active",
		"isActive":         true,
		"totalPayments":    12,
		"executedPayments": 3,
		"nextPaymentDate":  nil,
	}).Reply()
	srv.Mock("POST", "/v2/payouts/recurring/{id}").WithStatus(http.StatusCreated).Reply()
	srv.Mock("PATCH", "/v2/payouts/recurring/{id}").RespondJSON(map[string]any{
		"transactions": []any{map[string]any{"data": "0xrevoke", "to": "0xtoken"}},
	}).Reply()
	api := newAPI(t, srv)
	ctx := context.Background()

	status, err := api.GetRecurringStatus(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, &RecurringStatus{Status: "active", IsActive: true, TotalPayments: 12, ExecutedPayments: 3}, status)

	require.NoError(t, api.SubmitRecurringSignature(ctx, "rec-1", "0xpermit"))
	srv.LastRequest(t, "POST", "/v2/payouts/recurring/rec-1").AssertJSONBody(t, `{"permitSignature":"0xpermit"}`)

	err = api.SubmitRecurringSignature(ctx, "rec-1", "")
	assert.ErrorIs(t, err, validation.ErrValidation)
	srv.AssertCalledTimes(t, "POST", "/v2/payouts/recurring/rec-1", 1)

	txs, err := api.UpdateRecurring(ctx, "rec-1", ActionUnapprove)
	require.NoError(t, err)
	require.Len(t, txs.Transactions, 1)
	assert.Equal(t, "0xrevoke", txs.Transactions[0].Data)
	srv.LastRequest(t, "PATCH", "/v2/payouts/recurring/rec-1").AssertJSONField(t, "action", "unapprove")

	_, err = api.UpdateRecurring(ctx, "rec-1", RecurringAction("pause"))
	assert.ErrorIs(t, err, validation.ErrValidation)
	srv.AssertCalledTimes(t, "PATCH", "/v2/payouts/recurring/rec-1", 1)
}

func TestRecurring_NotFound(t *testing.T) {
	srv := reqtest.New(t)
	srv.Mock("GET", "/v2/payouts/recurring/{id}").RespondNotFound("Recurring payment not found").Reply()
	api := newAPI(t, srv)

	_, err := api.GetRecurringStatus(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, transport.StatusCode(err))
}
