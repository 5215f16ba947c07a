package requests

import (
	"strings"

	"golang.org/x/text/cases"
)

// StatusKind is the normalized state of a request.
type StatusKind string

// Status kinds.
const (
	StatusPaid      StatusKind = "paid"
	StatusPending   StatusKind = "pending"
	StatusCancelled StatusKind = "cancelled"
	StatusOverdue   StatusKind = "overdue"
	StatusUnknown   StatusKind = "unknown"
)

var statusDictionary = map[string]StatusKind{
	"completed":        StatusPaid,
	"settled":          StatusPaid,
	"paid":             StatusPaid,
	"processing":       StatusPending,
	"open":             StatusPending,
	"awaiting_payment": StatusPending,
	"pending":          StatusPending,
	"in_progress":      StatusPending,
	"cancelled":        StatusCancelled,
	"canceled":         StatusCancelled,
	"voided":           StatusCancelled,
	"expired":          StatusOverdue,
	"overdue":          StatusOverdue,
}

// NormalizeStatus derives the status kind. hasBeenPaid wins over the text
// status; a missing or blank status is pending and an unrecognized one is
// unknown.
func NormalizeStatus(p StatusPayload) StatusKind {
	if p.HasBeenPaid {
		return StatusPaid
	}
	if p.Status == nil {
		return StatusPending
	}
	s := strings.TrimSpace(*p.Status)
	if s == "" {
		return StatusPending
	}
	if kind, ok := statusDictionary[cases.Fold().String(s)]; ok {
		return kind
	}
	return StatusUnknown
}

// NewRequestStatus wraps a payload with its normalized kind.
func NewRequestStatus(p StatusPayload) *RequestStatus {
	return &RequestStatus{StatusPayload: p, Kind: NormalizeStatus(p)}
}

// IsTerminal reports whether no further state change is expected.
func (k StatusKind) IsTerminal() bool {
	return k == StatusPaid || k == StatusCancelled
}
