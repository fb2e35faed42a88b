package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func epochPtr(e int32) *int32 {
	return &e
}

func TestNewFetchPosition(t *testing.T) {
	t.Parallel()

	pos, err := NewFetchPosition(42, epochPtr(7), LeaderAndEpoch{Leader: 1, Epoch: epochPtr(7)})
	require.NoError(t, err)
	require.Equal(t, int64(42), pos.Offset)
	require.NotNil(t, pos.OffsetEpoch)
	require.Equal(t, int32(7), *pos.OffsetEpoch)

	_, err = NewFetchPosition(-1, nil, LeaderAndEpoch{Leader: NoLeader})
	require.ErrorIs(t, err, ErrInvalidPosition)
}

func TestFetchPositionValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, FetchPosition{Offset: 0}.Validate())
	require.True(t, errors.Is(FetchPosition{Offset: -5}.Validate(), ErrInvalidPosition))
}

func TestFetchPositionEqual(t *testing.T) {
	t.Parallel()

	base := FetchPosition{Offset: 10, OffsetEpoch: epochPtr(3), LeaderEpoch: LeaderAndEpoch{Leader: 2, Epoch: epochPtr(5)}}

	tests := []struct {
		name  string
		other FetchPosition
		want  bool
	}{
		{"identical", FetchPosition{Offset: 10, OffsetEpoch: epochPtr(3), LeaderEpoch: LeaderAndEpoch{Leader: 2, Epoch: epochPtr(5)}}, true},
		{"different offset", FetchPosition{Offset: 11, OffsetEpoch: epochPtr(3), LeaderEpoch: LeaderAndEpoch{Leader: 2, Epoch: epochPtr(5)}}, false},
		{"different offset epoch", FetchPosition{Offset: 10, OffsetEpoch: epochPtr(4), LeaderEpoch: LeaderAndEpoch{Leader: 2, Epoch: epochPtr(5)}}, false},
		{"nil offset epoch", FetchPosition{Offset: 10, LeaderEpoch: LeaderAndEpoch{Leader: 2, Epoch: epochPtr(5)}}, false},
		{"different leader", FetchPosition{Offset: 10, OffsetEpoch: epochPtr(3), LeaderEpoch: LeaderAndEpoch{Leader: 3, Epoch: epochPtr(5)}}, false},
		{"different leader epoch", FetchPosition{Offset: 10, OffsetEpoch: epochPtr(3), LeaderEpoch: LeaderAndEpoch{Leader: 2, Epoch: epochPtr(6)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, base.Equal(tt.other))
			require.Equal(t, tt.want, tt.other.Equal(base))
		})
	}
}

func TestLeaderAndEpochEqual(t *testing.T) {
	t.Parallel()

	require.True(t, LeaderAndEpoch{Leader: NoLeader}.Equal(LeaderAndEpoch{Leader: NoLeader}))
	require.False(t, LeaderAndEpoch{Leader: 1}.Equal(LeaderAndEpoch{Leader: 1, Epoch: epochPtr(0)}))

	// epochs compare by value, not by pointer identity
	require.True(t, LeaderAndEpoch{Leader: 1, Epoch: epochPtr(9)}.Equal(LeaderAndEpoch{Leader: 1, Epoch: epochPtr(9)}))
}
