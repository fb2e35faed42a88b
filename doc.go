// Package substate provides the client-side subscription and fetch-position
// state machine of a pull-based, partitioned message-stream consumer.
//
// Substate is the bookkeeping core a consumer client builds around: it tracks
// which partitions are currently being read, where reading stands in each,
// and under which subscription mode that partition set was derived. It
// performs no I/O and never blocks; transport, metadata resolution, and the
// group-rebalance protocol are external collaborators that call into it.
//
// # Quick Start
//
// Manual assignment driven by a poll loop:
//
//	state, err := substate.New(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tp := substate.TopicPartition{Topic: "orders", Partition: 0}
//	_ = state.AssignFromUser([]substate.TopicPartition{tp})
//	_ = state.SeekOffset(tp, 0)
//
//	for _, p := range state.FetchablePartitions() {
//	    pos, _ := state.Position(p)
//	    dispatchFetch(p, pos)
//	}
//
// Coordinator-driven subscription:
//
//	listener := &substate.ListenerFuncs{
//	    RevokedFunc:  func(ps []substate.TopicPartition) { commitOffsets(ps) },
//	    AssignedFunc: func(ps []substate.TopicPartition) { seedPositions(ps) },
//	}
//	_ = state.Subscribe([]string{"orders", "returns"}, listener)
//	committed, _ := state.AssignFromSubscribed(proposal)
//
// # Key Features
//
//   - Mutually exclusive subscription modes (topics, pattern, user-assigned)
//     with a guarded transition function
//   - Monotonic assignment versioning: exactly one bump per change to the
//     assigned partition set, observable via Watch for staleness detection
//   - Leader-epoch-fenced fetch positions, seeded only by explicit seeks
//   - Pause/resume gating independent of position validity
//   - Time-bounded preferred read-replica leases with an explicit clock
//   - Revoke-then-assign rebalance listener ordering
//
// # Concurrency
//
// One mutex covers the whole state; every operation — mode check, table
// mutation, version bump — is a single atomic critical section. All methods
// are synchronous and bounded by the assignment size. Rebalance listener
// callbacks run inside the critical section and must not call back into the
// state.
package substate
