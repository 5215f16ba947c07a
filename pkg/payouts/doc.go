// Package payouts wraps the /v2/payouts endpoints. A payout creates a request
// and returns what the payer needs to settle it in one step, either calldata
// or a payment intent, tagged the same way as requests.GetPaymentCalldata.
package payouts
