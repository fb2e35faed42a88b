// Package assignment provides the partition assignment table and per-partition
// fetch bookkeeping.
//
// The package implements the data structures behind the public
// SubscriptionState facade:
//
//   - Table: an insertion-ordered mapping from partition identity to its
//     PartitionState, with a monotonically increasing version counter that
//     bumps exactly once per change to the assigned key set. Replacement is
//     always wholesale: a new generation of fresh, positionless entries is
//     installed and the old one is discarded, never merged.
//   - PartitionState: the mutable per-partition record holding the current
//     fetch position, an optional pending offset reset, the user-requested
//     paused flag, and an optional preferred read-replica lease.
//   - Diff: the set difference between two assignment generations, used to
//     drive revoke-then-assign listener callbacks.
//
// Nothing in this package locks or blocks. The owning facade serializes all
// access behind a single mutex; these types are plain single-threaded data
// structures with O(assignment size) worst-case operations.
package assignment
