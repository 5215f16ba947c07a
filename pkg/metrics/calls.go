package metrics

import "time"

// Call outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeAPIError        = "api_error"
	OutcomeInvalidRequest  = "invalid_request"
	OutcomeInvalidResponse = "invalid_response"
	OutcomeCanceled        = "canceled"
	OutcomeError           = "error"
)

// Validation directions.
const (
	DirectionRequest  = "request"
	DirectionResponse = "response"
)

// CallMetrics are the metrics updated by the dispatcher. A nil *CallMetrics
// records nothing.
type CallMetrics struct {
	Calls              *Counter
	Duration           *Histogram
	ValidationFailures *Counter
}

// NewCallMetrics registers the call metrics in r.
func NewCallMetrics(r *Registry) *CallMetrics {
	return &CallMetrics{
		Calls: r.NewCounter(
			"request_api_calls_total",
			"Total number of Request API operations",
			"operation", "outcome",
		),
		Duration: r.NewHistogram(
			"request_api_call_duration_seconds",
			"Duration of Request API operations in seconds",
			DefaultBuckets,
			"operation",
		),
		ValidationFailures: r.NewCounter(
			"request_api_validation_failures_total",
			"Bodies rejected by runtime validation",
			"operation", "direction",
		),
	}
}

// ObserveCall records one finished operation.
func (m *CallMetrics) ObserveCall(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	if vec, err := m.Calls.WithLabels(operation, outcome); err == nil {
		_ = vec.Inc()
	}
	if vec, err := m.Duration.WithLabels(operation); err == nil {
		vec.Observe(d.Seconds())
	}
}

// ValidationFailed records a body rejected in the given direction.
func (m *CallMetrics) ValidationFailed(operation, direction string) {
	if m == nil {
		return
	}
	if vec, err := m.ValidationFailures.WithLabels(operation, direction); err == nil {
		_ = vec.Inc()
	}
}
