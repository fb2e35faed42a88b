package assignment

import (
	"github.com/arloliu/substate/types"
)

// Table is the assignment table: an insertion-ordered mapping from partition
// identity to PartitionState, paired with a monotonic version counter.
//
// The insertion order of the installing call is preserved so fetch schedulers
// iterate deterministically. The version starts at 0 and increments exactly
// once per call that changes the assigned key set; it never moves for
// position, pause, or lease mutations on existing entries.
//
// Table performs no locking. The owning SubscriptionState serializes all access.
type Table struct {
	order   []types.TopicPartition
	states  map[types.TopicPartition]*PartitionState
	version uint64
}

// NewTable creates an empty assignment table at version 0.
func NewTable() *Table {
	return &Table{
		states: make(map[types.TopicPartition]*PartitionState),
	}
}

// Version returns the current assignment version.
func (t *Table) Version() uint64 {
	return t.version
}

// Len returns the number of assigned partitions.
func (t *Table) Len() int {
	return len(t.order)
}

// Get returns the state for tp, or false if tp is not assigned.
func (t *Table) Get(tp types.TopicPartition) (*PartitionState, bool) {
	state, ok := t.states[tp]

	return state, ok
}

// Contains reports whether tp is assigned.
func (t *Table) Contains(tp types.TopicPartition) bool {
	_, ok := t.states[tp]

	return ok
}

// Partitions returns a copy of the assigned partition set in insertion order.
func (t *Table) Partitions() []types.TopicPartition {
	out := make([]types.TopicPartition, len(t.order))
	copy(out, t.order)

	return out
}

// Range calls fn for each assigned partition in insertion order until fn
// returns false.
func (t *Table) Range(fn func(tp types.TopicPartition, state *PartitionState) bool) {
	for _, tp := range t.order {
		if !fn(tp, t.states[tp]) {
			return
		}
	}
}

// Replace installs a new assignment generation.
//
// The old table is discarded wholesale: every entry of the new generation is
// a fresh, positionless PartitionState, including entries for partitions that
// were also present in the previous generation. Duplicate identities keep
// their first occurrence's ordering slot.
//
// Parameters:
//   - partitions: The new assignment in the coordinator's or user's order
//
// Returns:
//   - bool: true iff the assigned key set changed (and the version bumped)
func (t *Table) Replace(partitions []types.TopicPartition) bool {
	order := make([]types.TopicPartition, 0, len(partitions))
	states := make(map[types.TopicPartition]*PartitionState, len(partitions))
	for _, tp := range partitions {
		if _, dup := states[tp]; dup {
			continue
		}
		states[tp] = &PartitionState{}
		order = append(order, tp)
	}

	changed := !t.sameKeySet(states)
	t.order = order
	t.states = states
	if changed {
		t.version++
	}

	return changed
}

// Clear removes every entry.
//
// Returns:
//   - bool: true iff the table was non-empty (and the version bumped)
func (t *Table) Clear() bool {
	if len(t.order) == 0 {
		return false
	}

	t.order = nil
	t.states = make(map[types.TopicPartition]*PartitionState)
	t.version++

	return true
}

// sameKeySet reports whether next holds exactly the currently assigned keys.
func (t *Table) sameKeySet(next map[types.TopicPartition]*PartitionState) bool {
	if len(next) != len(t.states) {
		return false
	}
	for tp := range next {
		if _, ok := t.states[tp]; !ok {
			return false
		}
	}

	return true
}
