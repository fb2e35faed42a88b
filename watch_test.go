package substate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWatchDeliversInitialSnapshot(t *testing.T) {
	t.Parallel()
	state := newState(t)

	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0, tp1}))

	snapshots, unwatch := state.Watch()
	defer unwatch()

	snap := <-snapshots
	require.Equal(t, uint64(1), snap.Version)
	require.Equal(t, []TopicPartition{tp0, tp1}, snap.Partitions)
}

func TestWatchDeliversGenerations(t *testing.T) {
	t.Parallel()
	state := newState(t)

	snapshots, unwatch := state.Watch()
	defer unwatch()

	snap := <-snapshots
	require.Equal(t, uint64(0), snap.Version)
	require.Empty(t, snap.Partitions)

	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0}))
	snap = <-snapshots
	require.Equal(t, uint64(1), snap.Version)
	require.Equal(t, []TopicPartition{tp0}, snap.Partitions)

	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0, t1p0}))
	snap = <-snapshots
	require.Equal(t, uint64(2), snap.Version)
	require.Equal(t, []TopicPartition{tp0, t1p0}, snap.Partitions)

	state.Unsubscribe()
	snap = <-snapshots
	require.Equal(t, uint64(3), snap.Version)
	require.Empty(t, snap.Partitions)
}

func TestWatchSkipsUnchangedGenerations(t *testing.T) {
	t.Parallel()
	state := newState(t)

	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0}))

	snapshots, unwatch := state.Watch()
	defer unwatch()
	<-snapshots

	// same key set: no new generation, nothing published
	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0}))

	require.NoError(t, state.AssignFromUser([]TopicPartition{tp1}))
	snap := <-snapshots
	require.Equal(t, uint64(2), snap.Version)
	require.Equal(t, []TopicPartition{tp1}, snap.Partitions)
}

func TestWatchDropsWhenBufferFull(t *testing.T) {
	t.Parallel()

	cfg := Config{WatchBufferSize: 1}
	state, err := New(&cfg)
	require.NoError(t, err)

	snapshots, unwatch := state.Watch()
	defer unwatch()

	// the initial snapshot fills the single-entry buffer; both following
	// generations find it full and are dropped
	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0}))
	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0, tp1}))

	snap := <-snapshots
	require.Equal(t, uint64(0), snap.Version)
	require.Empty(t, snapshots)

	// the watcher catches up on the next generation
	require.NoError(t, state.AssignFromUser([]TopicPartition{tp1}))
	snap = <-snapshots
	require.Equal(t, uint64(3), snap.Version)
	require.Equal(t, []TopicPartition{tp1}, snap.Partitions)
}

func TestUnwatchClosesChannel(t *testing.T) {
	t.Parallel()
	state := newState(t)

	snapshots, unwatch := state.Watch()
	<-snapshots
	unwatch()

	_, ok := <-snapshots
	require.False(t, ok)

	// publishing after unwatch must not panic on the closed channel
	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0}))

	// unwatch is idempotent
	unwatch()
}

func TestWatchVersionsNeverRegress(t *testing.T) {
	t.Parallel()

	cfg := Config{WatchBufferSize: 64}
	state, err := New(&cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			// alternating sets, so every generation bumps the version
			next := []TopicPartition{tp0}
			if i%2 == 1 {
				next = []TopicPartition{tp1}
			}
			if err := state.AssignFromUser(next); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	// Watchers registered mid-churn must never observe a generation older
	// than their initial snapshot, and versions on a channel only increase.
	for i := 0; i < 20; i++ {
		snapshots, unwatch := state.Watch()

		last := <-snapshots
	drain:
		for {
			select {
			case snap := <-snapshots:
				require.Greater(t, snap.Version, last.Version)
				last = snap
			default:
				break drain
			}
		}
		unwatch()
	}

	wg.Wait()
}

func TestWatchMultipleWatchers(t *testing.T) {
	t.Parallel()
	state := newState(t)

	first, unwatchFirst := state.Watch()
	defer unwatchFirst()
	second, unwatchSecond := state.Watch()
	defer unwatchSecond()
	<-first
	<-second

	require.NoError(t, state.AssignFromUser([]TopicPartition{tp0}))

	for _, snapshots := range []<-chan AssignmentSnapshot{first, second} {
		snap := <-snapshots
		require.Equal(t, uint64(1), snap.Version)
		require.Equal(t, []TopicPartition{tp0}, snap.Partitions)
	}
}
