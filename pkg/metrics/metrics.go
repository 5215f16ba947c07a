package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// ErrDuplicateMetric is returned when registering a metric with a name that is already registered.
var ErrDuplicateMetric = errors.New("duplicate metric name")

// atomicFloat64 stores the bits of a float64 for atomic access.
type atomicFloat64 struct {
	bits uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&a.bits))
}

// Add atomically adds delta using a CAS loop.
func (a *atomicFloat64) Add(delta float64) {
	for {
		old := atomic.LoadUint64(&a.bits)
		next := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&a.bits, old, math.Float64bits(next)) {
			return
		}
	}
}

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Collect returns all samples for exposition.
	Collect() []Sample
}

// Sample represents a single metric sample with labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// labelSet maps label values to per-series state. It is shared by Counter
// and Histogram.
type labelSet[V any] struct {
	metric     string
	labelNames []string
	mu         sync.RWMutex
	series     map[string]*V
	newSeries  func(labels map[string]string) *V
}

func (s *labelSet[V]) get(values []string) (*V, error) {
	if len(values) != len(s.labelNames) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d", ErrLabelCountMismatch, s.metric, len(s.labelNames), len(values))
	}

	key := strings.Join(values, "\x00")
	s.mu.RLock()
	v, ok := s.series[key]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok = s.series[key]; !ok {
		labels := make(map[string]string, len(s.labelNames))
		for i, name := range s.labelNames {
			labels[name] = values[i]
		}
		v = s.newSeries(labels)
		s.series[key] = v
	}
	return v, nil
}

// each calls fn for every series in label-key order.
func (s *labelSet[V]) each(fn func(v *V)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.series))
	for k := range s.series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(s.series[k])
	}
}

// Counter is a monotonically increasing metric.
type Counter struct {
	name string
	help string
	set  labelSet[counterValue]
}

type counterValue struct {
	labels map[string]string
	value  atomicFloat64
}

func newCounter(name, help string, labelNames []string) *Counter {
	c := &Counter{name: name, help: help}
	c.set = labelSet[counterValue]{
		metric:     name,
		labelNames: labelNames,
		series:     make(map[string]*counterValue),
		newSeries:  func(l map[string]string) *counterValue { return &counterValue{labels: l} },
	}
	return c
}

func (c *Counter) Name() string     { return c.name }
func (c *Counter) Help() string     { return c.help }
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// WithLabels returns the series for the given label values.
func (c *Counter) WithLabels(values ...string) (*CounterVec, error) {
	cv, err := c.set.get(values)
	if err != nil {
		return nil, err
	}
	return &CounterVec{cv: cv}, nil
}

// Inc increments a counter without labels.
func (c *Counter) Inc() error {
	return c.Add(1)
}

// Add adds delta to a counter without labels.
func (c *Counter) Add(delta float64) error {
	vec, err := c.WithLabels()
	if err != nil {
		return err
	}
	return vec.Add(delta)
}

// Value returns the current value of one series, 0 when it was never set.
func (c *Counter) Value(values ...string) float64 {
	key := strings.Join(values, "\x00")
	c.set.mu.RLock()
	defer c.set.mu.RUnlock()
	if cv, ok := c.set.series[key]; ok {
		return cv.value.Load()
	}
	return 0
}

// Collect returns all metric samples.
func (c *Counter) Collect() []Sample {
	var samples []Sample
	c.set.each(func(cv *counterValue) {
		samples = append(samples, Sample{Name: c.name, Labels: cv.labels, Value: cv.value.Load()})
	})
	return samples
}

// CounterVec is one labelled counter series.
type CounterVec struct {
	cv *counterValue
}

// Inc increments the series by 1.
func (v *CounterVec) Inc() error {
	return v.Add(1)
}

// Add adds delta, which must not be negative.
func (v *CounterVec) Add(delta float64) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	v.cv.value.Add(delta)
	return nil
}

// Histogram tracks the distribution of observed values.
type Histogram struct {
	name    string
	help    string
	buckets []float64
	set     labelSet[histogramValue]
}

type histogramValue struct {
	labels map[string]string
	counts []uint64 // per bucket, not cumulative
	sum    atomicFloat64
	count  uint64
}

func newHistogram(name, help string, buckets []float64, labelNames []string) *Histogram {
	sorted := make([]float64, len(buckets))
	copy(sorted, buckets)
	sort.Float64s(sorted)
	if len(sorted) == 0 || !math.IsInf(sorted[len(sorted)-1], 1) {
		sorted = append(sorted, math.Inf(1))
	}

	h := &Histogram{name: name, help: help, buckets: sorted}
	h.set = labelSet[histogramValue]{
		metric:     name,
		labelNames: labelNames,
		series:     make(map[string]*histogramValue),
		newSeries: func(l map[string]string) *histogramValue {
			return &histogramValue{labels: l, counts: make([]uint64, len(sorted))}
		},
	}
	return h
}

func (h *Histogram) Name() string     { return h.name }
func (h *Histogram) Help() string     { return h.help }
func (h *Histogram) Type() MetricType { return MetricTypeHistogram }

// WithLabels returns the series for the given label values.
func (h *Histogram) WithLabels(values ...string) (*HistogramVec, error) {
	hv, err := h.set.get(values)
	if err != nil {
		return nil, err
	}
	return &HistogramVec{h: h, hv: hv}, nil
}

// Observe records a value in a histogram without labels.
func (h *Histogram) Observe(value float64) error {
	vec, err := h.WithLabels()
	if err != nil {
		return err
	}
	vec.Observe(value)
	return nil
}

// Collect returns the cumulative buckets, _sum and _count of every series.
func (h *Histogram) Collect() []Sample {
	var samples []Sample
	h.set.each(func(hv *histogramValue) {
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += atomic.LoadUint64(&hv.counts[i])
			labels := make(map[string]string, len(hv.labels)+1)
			for k, v := range hv.labels {
				labels[k] = v
			}
			labels["le"] = formatFloat(bound)
			samples = append(samples, Sample{Name: h.name + "_bucket", Labels: labels, Value: float64(cumulative)})
		}
		samples = append(samples,
			Sample{Name: h.name + "_sum", Labels: hv.labels, Value: hv.sum.Load()},
			Sample{Name: h.name + "_count", Labels: hv.labels, Value: float64(atomic.LoadUint64(&hv.count))},
		)
	})
	return samples
}

// HistogramVec is one labelled histogram series.
type HistogramVec struct {
	h  *Histogram
	hv *histogramValue
}

// Observe records a value.
func (v *HistogramVec) Observe(value float64) {
	for i, bound := range v.h.buckets {
		if value <= bound {
			atomic.AddUint64(&v.hv.counts[i], 1)
			break
		}
	}
	v.hv.sum.Add(value)
	atomic.AddUint64(&v.hv.count, 1)
}

// Registry holds all registered metrics.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	names   map[string]struct{}
}

// NewRegistry creates a new metric registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter creates and registers a new counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := newCounter(name, help, labels)
	r.register(c)
	return c
}

// NewHistogram creates and registers a new histogram with the given buckets.
func (r *Registry) NewHistogram(name, help string, buckets []float64, labels ...string) *Histogram {
	h := newHistogram(name, help, buckets, labels)
	r.register(h)
	return h
}

// register panics on a duplicate name since it would produce invalid
// exposition output.
func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.names[m.Name()]; exists {
		panic(fmt.Sprintf("%s: %s", ErrDuplicateMetric, m.Name()))
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// WriteText writes every metric with samples in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	r.mu.RLock()
	metrics := make([]Metric, len(r.metrics))
	copy(metrics, r.metrics)
	r.mu.RUnlock()

	for _, m := range metrics {
		if err := writeMetric(w, m); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns an http.Handler serving WriteText.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_ = r.WriteText(w)
	})
}

func writeMetric(w io.Writer, m Metric) error {
	samples := m.Collect()
	if len(samples) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", m.Name(), escapeHelp(m.Help()), m.Name(), m.Type()); err != nil {
		return err
	}
	for _, s := range samples {
		var err error
		if len(s.Labels) == 0 {
			_, err = fmt.Fprintf(w, "%s %s\n", s.Name, formatFloat(s.Value))
		} else {
			_, err = fmt.Fprintf(w, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// formatLabels renders labels as key="value" pairs sorted by key.
func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + `="` + escapeLabelValue(labels[k]) + `"`
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return fmt.Sprintf("%g", v)
}

func escapeHelp(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func escapeLabelValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

// DefaultBuckets are histogram buckets for API call durations in seconds.
var DefaultBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
