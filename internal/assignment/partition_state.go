package assignment

import (
	"github.com/arloliu/substate/types"
)

// PartitionState is the mutable fetch bookkeeping record for one assigned
// partition.
//
// A fresh state is positionless: the first position must be established by
// Seek before fetch-driven updates are accepted. The zero value is ready to
// use; Table creates one per partition on each assignment generation.
//
// PartitionState performs no locking. The owning SubscriptionState serializes
// all access.
type PartitionState struct {
	position *types.FetchPosition

	resetPending bool
	resetPolicy  types.ResetPolicy

	paused bool

	replica         int32
	replicaExpiryMs int64
	hasReplica      bool
}

// Position returns the current fetch position, or nil if none has been
// established. The returned value is a copy; mutating it does not affect the
// stored position.
func (s *PartitionState) Position() *types.FetchPosition {
	if s.position == nil {
		return nil
	}
	pos := *s.position

	return &pos
}

// Seek unconditionally overwrites the position and clears any pending reset.
// The paused flag is untouched: seeking a paused partition leaves it paused.
func (s *PartitionState) Seek(pos types.FetchPosition) {
	s.position = &pos
	s.resetPending = false
	s.resetPolicy = types.ResetPolicyDefault
}

// Update records fetch-driven progress on top of an established position.
//
// Returns:
//   - error: ErrInvalidTransition if no position has been established yet;
//     only Seek may seed the first position for a partition
func (s *PartitionState) Update(pos types.FetchPosition) error {
	if s.position == nil {
		return types.ErrInvalidTransition
	}
	s.position = &pos

	return nil
}

// RequestReset marks the partition as needing an offset reset under the given
// policy. The existing position, if any, is retained as a stale read-only
// value until the eventual Seek overwrites it.
func (s *PartitionState) RequestReset(policy types.ResetPolicy) {
	s.resetPending = true
	s.resetPolicy = policy
}

// ResetPending returns the pending reset policy and whether a reset is pending.
func (s *PartitionState) ResetPending() (types.ResetPolicy, bool) {
	if !s.resetPending {
		return types.ResetPolicyDefault, false
	}

	return s.resetPolicy, true
}

// Pause suspends fetching. Idempotent.
func (s *PartitionState) Pause() {
	s.paused = true
}

// Resume lifts a pause. Idempotent.
func (s *PartitionState) Resume() {
	s.paused = false
}

// Paused reports whether the user has suspended fetching.
func (s *PartitionState) Paused() bool {
	return s.paused
}

// HasValidPosition reports whether the partition holds a position that is
// safe to fetch from: established and not superseded by a pending reset.
func (s *PartitionState) HasValidPosition() bool {
	return s.position != nil && !s.resetPending
}

// Fetchable reports whether the partition may be handed to the fetch engine:
// not paused, no pending reset, and a position established.
func (s *PartitionState) Fetchable() bool {
	return !s.paused && s.HasValidPosition()
}

// SetPreferredReplica overwrites the preferred read-replica lease. No prior
// clear is required.
func (s *PartitionState) SetPreferredReplica(replica int32, expiryTimeMs int64) {
	s.replica = replica
	s.replicaExpiryMs = expiryTimeMs
	s.hasReplica = true
}

// PreferredReplica returns the leased read replica if the lease is still
// valid at nowMs. The comparison is pure: an expired lease stays in storage
// until overwritten or cleared, since callers query with monotonically
// increasing clocks.
//
// Returns:
//   - int32: Replica ID (meaningful only when the bool is true)
//   - bool: true iff a lease exists and nowMs <= its expiry
func (s *PartitionState) PreferredReplica(nowMs int64) (int32, bool) {
	if !s.hasReplica || nowMs > s.replicaExpiryMs {
		return 0, false
	}

	return s.replica, true
}

// ClearPreferredReplica removes the lease. Idempotent.
func (s *PartitionState) ClearPreferredReplica() {
	s.replica = 0
	s.replicaExpiryMs = 0
	s.hasReplica = false
}
