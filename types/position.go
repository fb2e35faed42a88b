package types

// NoLeader is the Leader value of a LeaderAndEpoch whose leader is unknown.
const NoLeader int32 = -1

// LeaderAndEpoch is the leader fencing token carried by a FetchPosition.
//
// The token is supplied by the caller's metadata layer and is opaque to this
// library: it is stored, returned, and compared for equality, never
// interpreted. Callers use it to fence position updates produced by a fetch
// against a leader that has since changed or been superseded.
type LeaderAndEpoch struct {
	// Leader is the broker ID of the partition leader, or NoLeader when unknown.
	Leader int32 `json:"leader"`

	// Epoch is the leader epoch, or nil when the metadata layer did not supply one.
	Epoch *int32 `json:"epoch,omitempty"`
}

// Equal reports whether two fencing tokens are identical.
//
// Nil epochs compare equal to each other and unequal to any concrete epoch.
func (l LeaderAndEpoch) Equal(other LeaderAndEpoch) bool {
	if l.Leader != other.Leader {
		return false
	}

	return equalEpoch(l.Epoch, other.Epoch)
}

// FetchPosition is the next-read cursor for an assigned partition.
//
// A position is an immutable value: it is constructed, validated, copied and
// compared, never mutated in place. The optional OffsetEpoch is the epoch of
// the record the offset points at; LeaderEpoch fences the position against
// stale leadership (see LeaderAndEpoch).
type FetchPosition struct {
	// Offset is the offset of the next record to read. Never negative.
	Offset int64 `json:"offset"`

	// OffsetEpoch is the leader epoch of the record at Offset, when known.
	OffsetEpoch *int32 `json:"offsetEpoch,omitempty"`

	// LeaderEpoch is the fencing token supplied by the metadata layer.
	LeaderEpoch LeaderAndEpoch `json:"leaderEpoch"`
}

// NewFetchPosition creates a validated fetch position.
//
// Parameters:
//   - offset: Offset of the next record to read (must be >= 0)
//   - offsetEpoch: Leader epoch of the record at offset (nil if unknown)
//   - leaderEpoch: Fencing token from the metadata layer
//
// Returns:
//   - FetchPosition: The constructed position
//   - error: ErrInvalidPosition if offset is negative
func NewFetchPosition(offset int64, offsetEpoch *int32, leaderEpoch LeaderAndEpoch) (FetchPosition, error) {
	pos := FetchPosition{Offset: offset, OffsetEpoch: offsetEpoch, LeaderEpoch: leaderEpoch}
	if err := pos.Validate(); err != nil {
		return FetchPosition{}, err
	}

	return pos, nil
}

// Validate checks the construction invariants of the position.
//
// Returns:
//   - error: ErrInvalidPosition if Offset is negative, nil otherwise
func (p FetchPosition) Validate() error {
	if p.Offset < 0 {
		return ErrInvalidPosition
	}

	return nil
}

// Equal reports whether two positions are identical, including both epochs.
func (p FetchPosition) Equal(other FetchPosition) bool {
	if p.Offset != other.Offset {
		return false
	}
	if !equalEpoch(p.OffsetEpoch, other.OffsetEpoch) {
		return false
	}

	return p.LeaderEpoch.Equal(other.LeaderEpoch)
}

// equalEpoch compares two optional epochs by value.
func equalEpoch(a, b *int32) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
