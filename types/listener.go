package types

// RebalanceListener receives coordinator-driven assignment change callbacks.
//
// The listener is supplied with Subscribe/SubscribePattern and invoked by
// AssignFromSubscribed: OnPartitionsRevoked fires with the partitions leaving
// the assignment before the table is mutated, OnPartitionsAssigned fires with
// the newly added partitions after. A listener therefore never observes an
// assignment containing partitions it has not been told about, and always
// hears about a revoke before losing access to that partition's state.
//
// Callbacks run synchronously inside the mutating call while the state lock
// is held. Implementations must be fast, must not block, and must not call
// back into the subscription state. Callback panics are not recovered;
// propagation policy belongs to the caller.
type RebalanceListener interface {
	// OnPartitionsRevoked is called with the partitions removed from the
	// assignment, before the new assignment is installed. Empty revocations
	// are not reported.
	OnPartitionsRevoked(partitions []TopicPartition)

	// OnPartitionsAssigned is called with the partitions added to the
	// assignment, after the new assignment is installed. Empty additions
	// are not reported.
	OnPartitionsAssigned(partitions []TopicPartition)
}

// ListenerFuncs adapts plain functions to the RebalanceListener interface.
//
// Nil fields are treated as no-ops, so callers can react to only one side of
// the rebalance:
//
//	listener := &types.ListenerFuncs{
//	    RevokedFunc: func(partitions []types.TopicPartition) {
//	        flushBuffers(partitions)
//	    },
//	}
type ListenerFuncs struct {
	// RevokedFunc handles OnPartitionsRevoked (nil = no-op).
	RevokedFunc func(partitions []TopicPartition)

	// AssignedFunc handles OnPartitionsAssigned (nil = no-op).
	AssignedFunc func(partitions []TopicPartition)
}

// Compile-time assertion that ListenerFuncs implements RebalanceListener.
var _ RebalanceListener = (*ListenerFuncs)(nil)

// OnPartitionsRevoked invokes RevokedFunc when set.
func (l *ListenerFuncs) OnPartitionsRevoked(partitions []TopicPartition) {
	if l.RevokedFunc != nil {
		l.RevokedFunc(partitions)
	}
}

// OnPartitionsAssigned invokes AssignedFunc when set.
func (l *ListenerFuncs) OnPartitionsAssigned(partitions []TopicPartition) {
	if l.AssignedFunc != nil {
		l.AssignedFunc(partitions)
	}
}
