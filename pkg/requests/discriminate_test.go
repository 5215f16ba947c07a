package requests

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requestnetwork/request-api-go/pkg/validation"
)

func TestDiscriminatePayment(t *testing.T) {
	t.Run("transactions means calldata", func(t *testing.T) {
		got, err := DiscriminatePayment(map[string]any{
			"transactions": []any{map[string]any{"data": "0x", "to": "0xabc", "value": nil}},
			"metadata":     map[string]any{"stepsRequired": json.Number("1")},
		})
		require.NoError(t, err)
		assert.Equal(t, KindCalldata, got.Kind)
		require.NotNil(t, got.Calldata)
		assert.Nil(t, got.Intent)
		assert.Equal(t, "0xabc", got.Calldata.Transactions[0].To)
		assert.Equal(t, 1, got.Calldata.Metadata.StepsRequired)
	})

	t.Run("paymentIntentId means intent", func(t *testing.T) {
		got, err := DiscriminatePayment(map[string]any{"paymentIntentId": "pi_1"})
		require.NoError(t, err)
		assert.Equal(t, KindPaymentIntent, got.Kind)
		assert.Nil(t, got.Calldata)
		assert.Equal(t, "pi_1", got.Intent.PaymentIntentID)
	})

	t.Run("transactions checked first", func(t *testing.T) {
		got, err := DiscriminatePayment(map[string]any{"transactions": []any{}, "paymentIntentId": "pi_1"})
		require.NoError(t, err)
		assert.Equal(t, KindCalldata, got.Kind)
	})

	t.Run("empty transactions still calldata", func(t *testing.T) {
		got, err := DiscriminatePayment(map[string]any{"transactions": []any{}})
		require.NoError(t, err)
		assert.Equal(t, KindCalldata, got.Kind)
		assert.Empty(t, got.Calldata.Transactions)
	})

	for _, payload := range []any{nil, "calldata", []any{}, map[string]any{}, map[string]any{"foo": 1}} {
		_, err := DiscriminatePayment(payload)
		require.Error(t, err, "%v", payload)
		assert.ErrorIs(t, err, validation.ErrValidation)

		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr)
		require.Len(t, vErr.Issues, 1)
		assert.Equal(t, validation.ErrCodeShape, vErr.Issues[0].Code)
	}

	t.Run("wrong field type", func(t *testing.T) {
		_, err := DiscriminatePayment(map[string]any{"transactions": "nope"})
		require.Error(t, err)
		assert.ErrorIs(t, err, validation.ErrValidation)
	})
}
