package assignment

import (
	"github.com/arloliu/substate/types"
)

// Diff computes the set difference between two assignment generations.
//
// The result drives the revoke-then-assign listener contract: revoked
// partitions are reported before the new generation is installed, added
// partitions after.
//
// Parameters:
//   - previous: The outgoing assignment (its order is kept for revoked)
//   - next: The incoming assignment (its order is kept for added)
//
// Returns:
//   - revoked: Partitions in previous but not in next
//   - added: Partitions in next but not in previous
func Diff(previous, next []types.TopicPartition) (revoked, added []types.TopicPartition) {
	prevSet := make(map[types.TopicPartition]struct{}, len(previous))
	for _, tp := range previous {
		prevSet[tp] = struct{}{}
	}
	nextSet := make(map[types.TopicPartition]struct{}, len(next))
	for _, tp := range next {
		nextSet[tp] = struct{}{}
	}

	for _, tp := range previous {
		if _, ok := nextSet[tp]; !ok {
			revoked = append(revoked, tp)
		}
	}
	for _, tp := range next {
		if _, ok := prevSet[tp]; !ok {
			added = append(added, tp)
		}
	}

	return revoked, added
}
