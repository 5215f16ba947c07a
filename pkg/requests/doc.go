// Package requests wraps the /v2/request endpoints: creating payment
// requests, reading their status, and fetching what is needed to pay them.
//
// Two endpoints return loosely shaped bodies that this package turns into
// tagged values. GetPaymentCalldata returns either on-chain calldata or an
// off-chain payment intent (see DiscriminatePayment), and GetStatus derives a
// closed StatusKind from the free-text status and the hasBeenPaid flag (see
// NormalizeStatus).
package requests
