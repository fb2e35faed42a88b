package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations must be non-blocking and thread-safe: every method is
// called synchronously from inside the subscription state's critical section.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	SubscriptionMetrics
	AssignmentMetrics
	FetchMetrics
}

// SubscriptionMetrics defines metrics for subscription mode changes.
type SubscriptionMetrics interface {
	// RecordModeChange records a subscription mode transition.
	//
	// Parameters:
	//   - from: Previous subscription mode
	//   - to: New subscription mode
	RecordModeChange(from, to SubscriptionMode)

	// RecordSubscribedTopics sets the current subscribed topic count (gauge metric).
	//
	// For pattern subscriptions this is the resolved matched-topic count.
	RecordSubscribedTopics(count int)
}

// AssignmentMetrics defines metrics for assignment table changes.
type AssignmentMetrics interface {
	// RecordAssignmentChange records an installed assignment generation.
	//
	// Parameters:
	//   - version: New assignment version
	//   - partitions: Size of the new assignment
	RecordAssignmentChange(version uint64, partitions int)

	// RecordAssignmentRejected records a coordinator proposal rejected by
	// subscription validation (all-or-nothing batch rejection).
	//
	// Parameters:
	//   - mode: Subscription mode the validation ran under
	RecordAssignmentRejected(mode SubscriptionMode)

	// RecordWatchDropped records an assignment snapshot dropped because a
	// watcher's channel was full.
	RecordWatchDropped()
}

// FetchMetrics defines metrics for poll-loop position bookkeeping.
type FetchMetrics interface {
	// RecordSeek records a user- or reset-driven repositioning.
	RecordSeek()

	// RecordOffsetReset records a requested offset reset.
	//
	// Parameters:
	//   - policy: Reset policy recorded for the partition
	RecordOffsetReset(policy ResetPolicy)

	// RecordPausedPartitions sets the current paused partition count (gauge metric).
	RecordPausedPartitions(count int)
}
