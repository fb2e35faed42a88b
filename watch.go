package substate

import (
	"sync"

	"github.com/arloliu/substate/types"
)

// assignmentWatcher is a helper for managing assignment change subscriptions.
type assignmentWatcher struct {
	ch     chan AssignmentSnapshot
	mu     sync.Mutex
	closed bool
}

// trySend delivers a snapshot to the watcher's channel without blocking.
func (w *assignmentWatcher) trySend(snap AssignmentSnapshot, collector MetricsCollector) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	select {
	case w.ch <- snap:
	default:
		// Watcher is slow or not ready; it will get the next generation.
		collector.RecordWatchDropped()
	}
}

// close safely closes the watcher's channel.
func (w *assignmentWatcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.ch)
}

// Watch returns a channel that receives a snapshot of each assignment
// generation: the version and the assigned partition set in insertion order.
//
// The channel is buffered (Config.WatchBufferSize) so rapid generations can
// queue without blocking the state; if the buffer is full the snapshot is
// dropped and the watcher catches up on the next generation. The current
// snapshot is delivered immediately upon subscription.
//
// Returns:
//   - <-chan AssignmentSnapshot: Channel receiving assignment generations
//   - func(): Unsubscribe function to clean up resources
//
// Example:
//
//	snapshots, unwatch := state.Watch()
//	defer unwatch()
//	for snap := range snapshots {
//	    refreshFetchSessions(snap.Version, snap.Partitions)
//	}
func (s *SubscriptionState) Watch() (<-chan AssignmentSnapshot, func()) {
	id := s.nextWatcherID.Add(1)

	w := &assignmentWatcher{ch: make(chan AssignmentSnapshot, s.cfg.WatchBufferSize)}

	// Register and deliver the current generation in one critical section so
	// the initial snapshot is ordered against concurrent publications: the
	// watcher never sees a generation older than its first delivery.
	s.mu.Lock()
	s.watchers.Store(id, w)
	w.trySend(s.snapshotLocked(), s.metrics)
	s.mu.Unlock()

	unwatch := func() {
		if removed, ok := s.watchers.LoadAndDelete(id); ok {
			removed.close()
		}
	}

	return w.ch, unwatch
}

// snapshotLocked builds the current assignment snapshot. Caller must hold s.mu.
func (s *SubscriptionState) snapshotLocked() AssignmentSnapshot {
	return types.AssignmentSnapshot{
		Version:    s.table.Version(),
		Partitions: s.table.Partitions(),
	}
}

// publishAssignmentLocked records and fans out a new assignment generation.
// Caller must hold s.mu and must have bumped the table version.
func (s *SubscriptionState) publishAssignmentLocked() {
	snap := s.snapshotLocked()

	s.metrics.RecordAssignmentChange(snap.Version, len(snap.Partitions))
	s.logger.Info("assignment changed",
		"version", snap.Version,
		"partitions", len(snap.Partitions),
	)

	s.watchers.Range(func(_ uint64, w *assignmentWatcher) bool {
		w.trySend(snap, s.metrics)

		return true
	})
}
