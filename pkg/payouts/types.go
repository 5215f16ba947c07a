package payouts

import "github.com/requestnetwork/request-api-go/pkg/requests"

// Recurrence schedules a recurring payout.
type Recurrence struct {
	StartDate     string `json:"startDate"`
	Frequency     string `json:"frequency"`
	TotalPayments int    `json:"totalPayments"`
	Payer         string `json:"payer"`
}

// Request is the body of Create, and an item of a batch.
type Request struct {
	Payee           string                 `json:"payee"`
	Amount          string                 `json:"amount"`
	InvoiceCurrency string                 `json:"invoiceCurrency"`
	PaymentCurrency string                 `json:"paymentCurrency"`
	FeePercentage   string                 `json:"feePercentage,omitempty"`
	FeeAddress      string                 `json:"feeAddress,omitempty"`
	Recurrence      *Recurrence            `json:"recurrence,omitempty"`
	PayerWallet     string                 `json:"payerWallet,omitempty"`
	CustomerInfo    *requests.CustomerInfo `json:"customerInfo,omitempty"`
	Reference       string                 `json:"reference,omitempty"`
}

// BatchRequest pays several new or existing requests at once.
type BatchRequest struct {
	Requests   []Request `json:"requests,omitempty"`
	RequestIDs []string  `json:"requestIds,omitempty"`
	Payer      string    `json:"payer,omitempty"`
}

// BatchResponse holds the transactions executing a batch.
type BatchResponse struct {
	ERC20ApprovalTransactions    []requests.Transaction `json:"ERC20ApprovalTransactions,omitempty"`
	ERC20BatchPaymentTransaction *requests.Transaction  `json:"ERC20BatchPaymentTransaction,omitempty"`
	ETHBatchPaymentTransaction   *requests.Transaction  `json:"ETHBatchPaymentTransaction,omitempty"`
}

// RecurringStatus is the state of a recurring payment.
type RecurringStatus struct {
	Status           string  `json:"status"`
	IsActive         bool    `json:"isActive,omitempty"`
	TotalPayments    int     `json:"totalPayments,omitempty"`
	ExecutedPayments int     `json:"executedPayments,omitempty"`
	NextPaymentDate  *string `json:"nextPaymentDate,omitempty"`
}

// RecurringAction changes a recurring payment.
type RecurringAction string

// Recurring actions.
const (
	ActionCancel    RecurringAction = "cancel"
	ActionUnapprove RecurringAction = "unapprove"
)

// TransactionList is the body returned by UpdateRecurring.
type TransactionList struct {
	Transactions []requests.Transaction `json:"transactions"`
}

type recurringSignature struct {
	PermitSignature string `json:"permitSignature"`
}

type recurringUpdate struct {
	Action RecurringAction `json:"action"`
}
