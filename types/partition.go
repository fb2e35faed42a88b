package types

import "strconv"

// TopicPartition identifies a single partition of a named stream.
//
// A partition is the unit of assignment and of fetch-position tracking.
// The zero value is not a valid partition identity; Topic must be non-empty.
type TopicPartition struct {
	// Topic is the stream name the partition belongs to.
	Topic string `json:"topic"`

	// Partition is the zero-based partition index within the topic.
	Partition int32 `json:"partition"`
}

// String returns the canonical "topic-partition" form (e.g. "orders-3").
//
// Returns:
//   - string: Dash-joined topic name and partition index
func (tp TopicPartition) String() string {
	return tp.Topic + "-" + strconv.FormatInt(int64(tp.Partition), 10)
}

// Compare orders partitions by topic name, then by partition index.
//
// Ordering rules:
//   - Topics compare using string order
//   - Within a topic, lower partition indexes sort first
//   - Returns 0 when both identity fields are equal
//
// Returns:
//   - int: -1 if tp < other, 0 if equal, +1 if tp > other
func (tp TopicPartition) Compare(other TopicPartition) int {
	if tp.Topic != other.Topic {
		if tp.Topic < other.Topic {
			return -1
		}

		return 1
	}
	if tp.Partition == other.Partition {
		return 0
	}
	if tp.Partition < other.Partition {
		return -1
	}

	return 1
}

// AssignmentSnapshot is an immutable view of one assignment generation.
//
// Snapshots are versioned so collaborators (fetch schedulers, coordinators)
// can detect staleness of in-flight requests that were issued against an
// earlier generation.
type AssignmentSnapshot struct {
	// Version is the monotonically increasing assignment version.
	// It increments exactly once per change to the assigned partition set.
	Version uint64 `json:"version"`

	// Partitions is the assigned partition set in insertion order.
	Partitions []TopicPartition `json:"partitions"`
}
