package requests

import (
	"github.com/requestnetwork/request-api-go/pkg/dispatch"
	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// DiscriminatePayment tags a pay response by field presence: a transactions
// field means calldata, otherwise a paymentIntentId field means a payment
// intent. Anything else is a *validation.Error.
func DiscriminatePayment(payload any) (*PaymentInstructions, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, shapeError()
	}

	if _, ok := obj["transactions"]; ok {
		cd, err := dispatch.Decode[Calldata](obj)
		if err != nil {
			return nil, &validation.Error{Message: "invalid calldata payload", Cause: err}
		}
		return &PaymentInstructions{Kind: KindCalldata, Calldata: &cd}, nil
	}
	if _, ok := obj["paymentIntentId"]; ok {
		pi, err := dispatch.Decode[PaymentIntent](obj)
		if err != nil {
			return nil, &validation.Error{Message: "invalid payment intent payload", Cause: err}
		}
		return &PaymentInstructions{Kind: KindPaymentIntent, Intent: &pi}, nil
	}
	return nil, shapeError()
}

func shapeError() *validation.Error {
	return &validation.Error{
		Message: "payment payload matches neither calldata nor payment intent shape",
		Issues: []*validation.FieldError{{
			Location: validation.LocationResponse,
			Code:     validation.ErrCodeShape,
			Message:  "expected a transactions or paymentIntentId field",
		}},
	}
}
