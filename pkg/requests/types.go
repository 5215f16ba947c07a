package requests

// Recurrence schedules a recurring request.
type Recurrence struct {
	StartDate string `json:"startDate"`
	// Frequency is DAILY, WEEKLY, MONTHLY or YEARLY.
	Frequency string `json:"frequency"`
}

// Address is a postal address.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CustomerInfo describes the customer a request is addressed to.
type CustomerInfo struct {
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Email     string   `json:"email,omitempty"`
	Address   *Address `json:"address,omitempty"`
}

// CreateRequest is the body of Create.
type CreateRequest struct {
	Payer                           string        `json:"payer,omitempty"`
	Payee                           string        `json:"payee,omitempty"`
	Amount                          string        `json:"amount"`
	InvoiceCurrency                 string        `json:"invoiceCurrency"`
	PaymentCurrency                 string        `json:"paymentCurrency"`
	Recurrence                      *Recurrence   `json:"recurrence,omitempty"`
	IsCryptoToFiatAvailable         *bool         `json:"isCryptoToFiatAvailable,omitempty"`
	CustomerInfo                    *CustomerInfo `json:"customerInfo,omitempty"`
	Reference                       string        `json:"reference,omitempty"`
	OriginalRequestID               string        `json:"originalRequestId,omitempty"`
	OriginalRequestPaymentReference string        `json:"originalRequestPaymentReference,omitempty"`
}

// CreateResponse identifies a created request.
type CreateResponse struct {
	RequestID        string `json:"requestId"`
	PaymentReference string `json:"paymentReference"`
}

// StatusPayload is the body returned by the status endpoint.
type StatusPayload struct {
	HasBeenPaid                     bool           `json:"hasBeenPaid"`
	Status                          *string        `json:"status,omitempty"`
	PaymentReference                string         `json:"paymentReference,omitempty"`
	RequestID                       string         `json:"requestId,omitempty"`
	IsListening                     bool           `json:"isListening,omitempty"`
	TxHash                          *string        `json:"txHash,omitempty"`
	Recurrence                      map[string]any `json:"recurrence,omitempty"`
	OriginalRequestID               *string        `json:"originalRequestId,omitempty"`
	OriginalRequestPaymentReference *string        `json:"originalRequestPaymentReference,omitempty"`
	IsRecurrenceStopped             bool           `json:"isRecurrenceStopped,omitempty"`
	IsCryptoToFiatAvailable         bool           `json:"isCryptoToFiatAvailable,omitempty"`
	Payments                        []any          `json:"payments,omitempty"`
	CustomerInfo                    *CustomerInfo  `json:"customerInfo,omitempty"`
	Reference                       *string        `json:"reference,omitempty"`
}

// RequestStatus is a status payload with its normalized kind.
type RequestStatus struct {
	StatusPayload
	Kind StatusKind `json:"kind"`
}

// Transaction is an EVM transaction to sign and send.
type Transaction struct {
	Data  string `json:"data"`
	To    string `json:"to"`
	Value any    `json:"value,omitempty"`
}

// CalldataMetadata describes how to execute calldata transactions.
type CalldataMetadata struct {
	StepsRequired            int  `json:"stepsRequired,omitempty"`
	NeedsApproval            bool `json:"needsApproval,omitempty"`
	ApprovalTransactionIndex *int `json:"approvalTransactionIndex,omitempty"`
	HasEnoughBalance         bool `json:"hasEnoughBalance,omitempty"`
	HasEnoughGas             bool `json:"hasEnoughGas,omitempty"`
}

// Calldata is the on-chain payment variant.
type Calldata struct {
	RequestID    string            `json:"requestId,omitempty"`
	Transactions []Transaction     `json:"transactions"`
	Metadata     *CalldataMetadata `json:"metadata,omitempty"`
}

// PaymentIntentMetadata describes the permit support of the payment token.
type PaymentIntentMetadata struct {
	SupportsEIP2612 bool `json:"supportsEIP2612"`
}

// PaymentIntent is the off-chain, signed payment variant.
type PaymentIntent struct {
	RequestID             string                 `json:"requestId,omitempty"`
	PaymentIntentID       string                 `json:"paymentIntentId"`
	PaymentIntent         string                 `json:"paymentIntent,omitempty"`
	ApprovalPermitPayload any                    `json:"approvalPermitPayload,omitempty"`
	ApprovalCalldata      any                    `json:"approvalCalldata,omitempty"`
	Metadata              *PaymentIntentMetadata `json:"metadata,omitempty"`
}

// PaymentKind tags PaymentInstructions.
type PaymentKind string

// Payment instruction kinds.
const (
	KindCalldata      PaymentKind = "calldata"
	KindPaymentIntent PaymentKind = "paymentIntent"
)

// PaymentInstructions is what the payer needs to pay a request. Exactly one
// of Calldata and Intent is set, as indicated by Kind.
type PaymentInstructions struct {
	Kind     PaymentKind    `json:"kind"`
	Calldata *Calldata      `json:"calldata,omitempty"`
	Intent   *PaymentIntent `json:"paymentIntent,omitempty"`
}

// PayParams are the query parameters of GetPaymentCalldata.
type PayParams struct {
	Wallet           string
	Chain            string
	Token            string
	ClientUserID     string
	PaymentDetailsID string
	FeePercentage    string
	FeeAddress       string
}

// RouteParams are the query parameters of GetPaymentRoutes.
type RouteParams struct {
	Wallet        string
	Amount        string
	FeePercentage string
	FeeAddress    string
}

// Route is one way to pay a request.
type Route struct {
	ID           string           `json:"id"`
	Fee          float64          `json:"fee,omitempty"`
	FeeBreakdown []map[string]any `json:"feeBreakdown,omitempty"`
	Speed        any              `json:"speed,omitempty"`
	PriceImpact  float64          `json:"price_impact,omitempty"`
	Chain        string           `json:"chain,omitempty"`
	Token        string           `json:"token,omitempty"`
}

// Routes is the body of GetPaymentRoutes.
type Routes struct {
	Routes []Route `json:"routes"`
}

// SignedData is an EIP-712 signature with its replay parameters.
type SignedData struct {
	Signature string `json:"signature"`
	Nonce     string `json:"nonce"`
	Deadline  string `json:"deadline"`
}

// SendPaymentIntentRequest is the body of SendPaymentIntent.
type SendPaymentIntentRequest struct {
	SignedPaymentIntent  SignedData  `json:"signedPaymentIntent"`
	SignedApprovalPermit *SignedData `json:"signedApprovalPermit,omitempty"`
}

type updateRequest struct {
	IsRecurrenceStopped bool `json:"isRecurrenceStopped"`
}
