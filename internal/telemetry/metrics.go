package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/memolab/pkg/hooks"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "memolab").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "memolab",
		// Passes are in-memory and usually finish well under a millisecond.
		Buckets:  prometheus.ExponentialBuckets(0.00001, 4, 10),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics is a hooks.Observer that records passes and gate decisions.
type Metrics struct {
	passesTotal  *prometheus.CounterVec
	gateRenders  *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
}

// NewMetrics registers the pass metrics. Registering twice on the same
// registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of render passes by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"holder", "status"}),

		gateRenders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "gate_renders_total",
			Help:        "Memoized child decisions in committed passes",
			ConstLabels: config.ConstLabels,
		}, []string{"holder", "gate", "decision"}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"holder"}),
	}
}

func (m *Metrics) PassStarted(ctx context.Context, _ hooks.PassInfo) context.Context {
	return ctx
}

func (m *Metrics) GateDecided(_ context.Context, info hooks.PassInfo, d hooks.Decision) {
	m.gateRenders.WithLabelValues(info.Holder, d.Gate, decisionLabel(d)).Inc()
}

func (m *Metrics) PassFinished(_ context.Context, info hooks.PassInfo, err error) {
	status := "committed"
	if err != nil {
		status = "failed"
	}
	m.passesTotal.WithLabelValues(info.Holder, status).Inc()
	m.passDuration.WithLabelValues(info.Holder).Observe(info.Duration.Seconds())
}

func decisionLabel(d hooks.Decision) string {
	if d.Executed {
		return "executed"
	}
	return "skipped"
}
