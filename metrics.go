package substate

import (
	"github.com/arloliu/substate/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// NewPrometheusMetrics creates a MetricsCollector that registers its
// collectors with the given Prometheus registerer on first use.
//
// Parameters:
//   - reg: Target registry (nil uses prometheus.DefaultRegisterer)
//   - namespace: Metric name prefix (empty uses "substate")
//
// Returns:
//   - MetricsCollector: Collector suitable for WithMetrics
//
// Example:
//
//	collector := substate.NewPrometheusMetrics(prometheus.DefaultRegisterer, "consumer")
//	state, err := substate.New(nil, substate.WithMetrics(collector))
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}

// NewNopMetrics creates a MetricsCollector that discards all measurements.
// This is the default when no WithMetrics option is supplied.
func NewNopMetrics() MetricsCollector {
	return metrics.NewNop()
}
