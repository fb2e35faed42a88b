package assignment

import (
	"testing"

	"github.com/arloliu/substate/types"
	"github.com/stretchr/testify/require"
)

func position(offset int64) types.FetchPosition {
	return types.FetchPosition{Offset: offset, LeaderEpoch: types.LeaderAndEpoch{Leader: types.NoLeader}}
}

func TestPartitionState_FreshState(t *testing.T) {
	t.Parallel()

	s := &PartitionState{}
	require.Nil(t, s.Position())
	require.False(t, s.Paused())
	require.False(t, s.HasValidPosition())
	require.False(t, s.Fetchable())

	_, pending := s.ResetPending()
	require.False(t, pending)

	_, ok := s.PreferredReplica(0)
	require.False(t, ok)
}

func TestPartitionState_SeekEstablishesPosition(t *testing.T) {
	t.Parallel()

	s := &PartitionState{}
	s.Seek(position(5))

	require.True(t, s.HasValidPosition())
	require.True(t, s.Fetchable())
	require.Equal(t, int64(5), s.Position().Offset)
}

func TestPartitionState_UpdateRequiresEstablishedPosition(t *testing.T) {
	t.Parallel()

	s := &PartitionState{}
	require.ErrorIs(t, s.Update(position(1)), types.ErrInvalidTransition)

	s.Seek(position(1))
	require.NoError(t, s.Update(position(2)))
	require.Equal(t, int64(2), s.Position().Offset)
}

func TestPartitionState_ResetRetainsStalePosition(t *testing.T) {
	t.Parallel()

	s := &PartitionState{}
	s.Seek(position(5))
	s.RequestReset(types.ResetPolicyLatest)

	require.False(t, s.Fetchable())
	require.False(t, s.HasValidPosition())

	policy, pending := s.ResetPending()
	require.True(t, pending)
	require.Equal(t, types.ResetPolicyLatest, policy)

	// stale position stays readable
	require.NotNil(t, s.Position())
	require.Equal(t, int64(5), s.Position().Offset)

	// seek clears the reset
	s.Seek(position(0))
	_, pending = s.ResetPending()
	require.False(t, pending)
	require.True(t, s.Fetchable())
}

func TestPartitionState_PauseIsIndependentOfPosition(t *testing.T) {
	t.Parallel()

	s := &PartitionState{}
	s.Pause()
	s.Pause() // idempotent
	require.True(t, s.Paused())
	require.False(t, s.Fetchable())

	s.Seek(position(7))
	require.False(t, s.Fetchable(), "paused partition must not be fetchable")
	require.True(t, s.HasValidPosition())

	s.Resume()
	require.True(t, s.Fetchable())
	s.Resume() // idempotent
	require.False(t, s.Paused())
}

func TestPartitionState_PositionReturnsCopy(t *testing.T) {
	t.Parallel()

	s := &PartitionState{}
	s.Seek(position(3))

	got := s.Position()
	got.Offset = 99
	require.Equal(t, int64(3), s.Position().Offset)
}

func TestPartitionState_PreferredReplicaLease(t *testing.T) {
	t.Parallel()

	s := &PartitionState{}
	s.SetPreferredReplica(42, 10)

	for _, now := range []int64{0, 9, 10} {
		replica, ok := s.PreferredReplica(now)
		require.True(t, ok, "lease should be valid at t=%d", now)
		require.Equal(t, int32(42), replica)
	}

	_, ok := s.PreferredReplica(11)
	require.False(t, ok, "lease should be expired at t=11")

	// expired lease is not evicted by a read; a smaller timestamp still sees it
	replica, ok := s.PreferredReplica(10)
	require.True(t, ok)
	require.Equal(t, int32(42), replica)

	// overwrite needs no prior clear
	s.SetPreferredReplica(44, 30)
	replica, ok = s.PreferredReplica(30)
	require.True(t, ok)
	require.Equal(t, int32(44), replica)

	s.ClearPreferredReplica()
	_, ok = s.PreferredReplica(0)
	require.False(t, ok)
}
