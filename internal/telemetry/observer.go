package telemetry

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/memolab/internal/config"
	"github.com/vango-dev/memolab/pkg/hooks"
)

// NewObserver builds the observers enabled in cfg. The Metrics are nil
// unless metrics are enabled; they are registered on reg, or on the default
// registerer if reg is nil.
func NewObserver(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (hooks.Observer, *Metrics) {
	observers := []hooks.Observer{NewLogObserver(logger)}

	var metrics *Metrics
	if cfg.Metrics.Enabled {
		opts := []MetricsOption{WithNamespace(cfg.Metrics.Namespace)}
		if reg != nil {
			opts = append(opts, WithRegistry(reg))
		}
		metrics = NewMetrics(opts...)
		observers = append(observers, metrics)
	}
	if cfg.Tracing.Enabled {
		observers = append(observers, NewTracing(WithTracerName(cfg.Tracing.TracerName)))
	}
	return hooks.Observers(observers...), metrics
}
