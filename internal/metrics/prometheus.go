package metrics

import (
	"sync"

	"github.com/arloliu/substate/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are registered lazily on first use so that constructing the
// collector never panics on duplicate registration in tests that share the
// default registerer.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	modeChanges      *prometheus.CounterVec
	subscribedTopics prometheus.Gauge

	assignmentVersion  prometheus.Gauge
	assignedPartitions prometheus.Gauge
	rejectedProposals  *prometheus.CounterVec
	watchDrops         prometheus.Counter

	seeks            prometheus.Counter
	offsetResets     *prometheus.CounterVec
	pausedPartitions prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "substate" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "substate"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.modeChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "subscription",
			Name:      "mode_changes_total",
			Help:      "Total subscription mode transitions by source and target mode.",
		}, []string{"from", "to"})

		p.subscribedTopics = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "subscription",
			Name:      "topics_current",
			Help:      "Current number of subscribed (or pattern-matched) topics.",
		})

		p.assignmentVersion = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "version",
			Help:      "Current assignment version (monotonic generation counter).",
		})

		p.assignedPartitions = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "partitions_current",
			Help:      "Current number of assigned partitions.",
		})

		p.rejectedProposals = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "rejected_proposals_total",
			Help:      "Coordinator assignment proposals rejected by subscription validation.",
		}, []string{"mode"})

		p.watchDrops = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "assignment",
			Name:      "watch_snapshots_dropped_total",
			Help:      "Assignment snapshots dropped because a watcher channel was full.",
		})

		p.seeks = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "fetch",
			Name:      "seeks_total",
			Help:      "Total user- or reset-driven repositionings.",
		})

		p.offsetResets = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "fetch",
			Name:      "offset_resets_total",
			Help:      "Total requested offset resets by policy.",
		}, []string{"policy"})

		p.pausedPartitions = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "fetch",
			Name:      "paused_partitions_current",
			Help:      "Current number of paused partitions.",
		})

		p.reg.MustRegister(p.modeChanges)
		p.reg.MustRegister(p.subscribedTopics)
		p.reg.MustRegister(p.assignmentVersion)
		p.reg.MustRegister(p.assignedPartitions)
		p.reg.MustRegister(p.rejectedProposals)
		p.reg.MustRegister(p.watchDrops)
		p.reg.MustRegister(p.seeks)
		p.reg.MustRegister(p.offsetResets)
		p.reg.MustRegister(p.pausedPartitions)
	})
}

// SubscriptionMetrics implementation

// RecordModeChange increments the mode transition counter.
func (p *PrometheusCollector) RecordModeChange(from, to types.SubscriptionMode) {
	p.ensureRegistered()
	p.modeChanges.WithLabelValues(from.String(), to.String()).Inc()
}

// RecordSubscribedTopics sets the subscribed topic gauge.
func (p *PrometheusCollector) RecordSubscribedTopics(count int) {
	p.ensureRegistered()
	p.subscribedTopics.Set(float64(count))
}

// AssignmentMetrics implementation

// RecordAssignmentChange sets the version and partition-count gauges.
func (p *PrometheusCollector) RecordAssignmentChange(version uint64, partitions int) {
	p.ensureRegistered()
	p.assignmentVersion.Set(float64(version))
	p.assignedPartitions.Set(float64(partitions))
}

// RecordAssignmentRejected increments the rejected proposal counter.
func (p *PrometheusCollector) RecordAssignmentRejected(mode types.SubscriptionMode) {
	p.ensureRegistered()
	p.rejectedProposals.WithLabelValues(mode.String()).Inc()
}

// RecordWatchDropped increments the dropped snapshot counter.
func (p *PrometheusCollector) RecordWatchDropped() {
	p.ensureRegistered()
	p.watchDrops.Inc()
}

// FetchMetrics implementation

// RecordSeek increments the seek counter.
func (p *PrometheusCollector) RecordSeek() {
	p.ensureRegistered()
	p.seeks.Inc()
}

// RecordOffsetReset increments the reset counter for the policy.
func (p *PrometheusCollector) RecordOffsetReset(policy types.ResetPolicy) {
	p.ensureRegistered()
	p.offsetResets.WithLabelValues(policy.String()).Inc()
}

// RecordPausedPartitions sets the paused partition gauge.
func (p *PrometheusCollector) RecordPausedPartitions(count int) {
	p.ensureRegistered()
	p.pausedPartitions.Set(float64(count))
}
