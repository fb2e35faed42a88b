// Package metrics provides MetricsCollector implementations for the Substate library.
package metrics

import "github.com/arloliu/substate/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	state, _ := substate.New(nil, substate.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SubscriptionMetrics implementation

// RecordModeChange discards the mode transition metric.
func (n *NopMetrics) RecordModeChange(_ /* from */, _ /* to */ types.SubscriptionMode) {
	// No-op
}

// RecordSubscribedTopics discards the subscribed topic count metric.
func (n *NopMetrics) RecordSubscribedTopics(_ /* count */ int) {
	// No-op
}

// AssignmentMetrics implementation

// RecordAssignmentChange discards the assignment change metric.
func (n *NopMetrics) RecordAssignmentChange(_ /* version */ uint64, _ /* partitions */ int) {
	// No-op
}

// RecordAssignmentRejected discards the rejected proposal metric.
func (n *NopMetrics) RecordAssignmentRejected(_ /* mode */ types.SubscriptionMode) {
	// No-op
}

// RecordWatchDropped discards the dropped snapshot metric.
func (n *NopMetrics) RecordWatchDropped() {
	// No-op
}

// FetchMetrics implementation

// RecordSeek discards the seek metric.
func (n *NopMetrics) RecordSeek() {
	// No-op
}

// RecordOffsetReset discards the offset reset metric.
func (n *NopMetrics) RecordOffsetReset(_ /* policy */ types.ResetPolicy) {
	// No-op
}

// RecordPausedPartitions discards the paused partition count metric.
func (n *NopMetrics) RecordPausedPartitions(_ /* count */ int) {
	// No-op
}
