// Package metrics collects client-side call metrics and renders them in the
// Prometheus text exposition format (text/plain; version=0.0.4).
//
// Supported metric types:
//   - Counter: monotonically increasing value (e.g., call counts)
//   - Histogram: distribution of values with configurable buckets (e.g., latencies)
//
// All metrics are safe for concurrent use.
//
// # Call Metrics
//
// NewCallMetrics registers the metrics the dispatcher updates:
//
//   - request_api_calls_total: Counter of operations (labels: operation, outcome)
//   - request_api_call_duration_seconds: Histogram of call latency (labels: operation)
//   - request_api_validation_failures_total: Counter of rejected bodies (labels: operation, direction)
//
// # Usage
//
//	registry := metrics.NewRegistry()
//	c, err := client.New(client.WithMetrics(metrics.NewCallMetrics(registry)))
//	...
//	_ = registry.WriteText(os.Stdout)
//
// Custom metrics can also be created:
//
//	counter := registry.NewCounter("my_counter", "Description of counter", "label1", "label2")
//	vec, _ := counter.WithLabels("value1", "value2")
//	_ = vec.Inc()
package metrics
