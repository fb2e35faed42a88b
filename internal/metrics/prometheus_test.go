package metrics

import (
	"testing"

	"github.com/arloliu/substate/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector_Defaults(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry(), "")
	require.Equal(t, "substate", p.namespace)
}

func TestPrometheusCollector_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "testns")

	p.RecordModeChange(types.ModeNone, types.ModeTopics)
	p.RecordSubscribedTopics(2)
	p.RecordAssignmentChange(3, 5)
	p.RecordAssignmentRejected(types.ModeTopics)
	p.RecordWatchDropped()
	p.RecordSeek()
	p.RecordSeek()
	p.RecordOffsetReset(types.ResetPolicyLatest)
	p.RecordPausedPartitions(1)

	require.Equal(t, float64(3), testutil.ToFloat64(p.assignmentVersion))
	require.Equal(t, float64(5), testutil.ToFloat64(p.assignedPartitions))
	require.Equal(t, float64(2), testutil.ToFloat64(p.subscribedTopics))
	require.Equal(t, float64(2), testutil.ToFloat64(p.seeks))
	require.Equal(t, float64(1), testutil.ToFloat64(p.watchDrops))
	require.Equal(t, float64(1), testutil.ToFloat64(p.pausedPartitions))
	require.Equal(t, float64(1), testutil.ToFloat64(p.rejectedProposals.WithLabelValues("Topics")))
	require.Equal(t, float64(1), testutil.ToFloat64(p.offsetResets.WithLabelValues("latest")))
	require.Equal(t, float64(1), testutil.ToFloat64(p.modeChanges.WithLabelValues("None", "Topics")))
}

func TestPrometheusCollector_LazyRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "lazy")

	// Nothing registered until first record call.
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)

	p.RecordSeek()
	families, err = reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
