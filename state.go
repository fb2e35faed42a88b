package substate

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/arloliu/substate/internal/assignment"
	"github.com/arloliu/substate/internal/logging"
	"github.com/arloliu/substate/internal/metrics"
	"github.com/puzpuzpuz/xsync/v4"
)

// SubscriptionState tracks which partitions a pull consumer is reading, where
// it is reading from in each, and under which subscription mode that
// partition set was derived.
//
// It is the shared bookkeeping object between a consumer's poll loop, its
// fetch engine, and the external group-coordination protocol:
//
//   - The coordination engine calls Subscribe/SubscribePattern/
//     SubscribeFromPattern/AssignFromSubscribed/Unsubscribe.
//   - The poll loop calls Seek, Pause/Resume, and the fetchability queries.
//   - The fetch engine calls UpdatePosition to record progress,
//     RequestOffsetReset on out-of-range errors, and the preferred
//     read-replica operations.
//
// Thread Safety:
//   - All methods are safe for concurrent use
//   - A single mutex covers mode and assignment table; every operation is
//     one atomic critical section
//   - No method performs I/O, blocks, or retries; execution time is bounded
//     by the assignment size
//
// Rebalance listener callbacks run synchronously inside AssignFromSubscribed
// while the lock is held; listeners must not call back into the state.
type SubscriptionState struct {
	cfg     Config
	logger  Logger
	metrics MetricsCollector

	mu       sync.Mutex
	mode     SubscriptionMode
	topics   map[string]struct{}
	pattern  *regexp.Regexp // as supplied by the user
	matcher  *regexp.Regexp // anchored for full-string matching
	matched  map[string]struct{}
	listener RebalanceListener
	table    *assignment.Table

	watchers      *xsync.Map[uint64, *assignmentWatcher]
	nextWatcherID atomic.Uint64
}

// New creates a SubscriptionState in mode None with an empty assignment.
//
// Returns a concrete *SubscriptionState following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces for
// testing if needed.
//
// Parameters:
//   - cfg: Configuration (nil uses DefaultConfig; missing fields are defaulted)
//   - opts: Optional dependencies (logger, metrics)
//
// Returns:
//   - *SubscriptionState: Initialized state at assignment version 0
//   - error: Validation error if the configuration is invalid
//
// Example:
//
//	state, err := substate.New(nil, substate.WithLogger(logger))
func New(cfg *Config, opts ...Option) (*SubscriptionState, error) {
	var config Config
	if cfg != nil {
		config = *cfg
	}
	SetDefaults(&config)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := &stateOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = logging.NewNop()
	}
	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}

	return &SubscriptionState{
		cfg:      config,
		logger:   options.logger,
		metrics:  options.metrics,
		table:    assignment.NewTable(),
		watchers: xsync.NewMap[uint64, *assignmentWatcher](),
	}, nil
}

// Subscribe declares interest in the named topics; the concrete partition set
// is pushed in later via AssignFromSubscribed by the external coordinator.
//
// Re-subscribing in Topics mode replaces the topic set without touching the
// committed assignment. Subscribing while a different non-None mode is
// established fails.
//
// Parameters:
//   - topics: Topic names (duplicates are collapsed)
//   - listener: Rebalance callbacks for subsequent AssignFromSubscribed calls
//     (may be nil for no callbacks)
//
// Returns:
//   - error: ErrModeConflict if partitions or a pattern are already subscribed
func (s *SubscriptionState) Subscribe(topics []string, listener RebalanceListener) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setMode(ModeTopics); err != nil {
		return err
	}

	s.topics = make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		s.topics[topic] = struct{}{}
	}
	s.listener = listener

	s.metrics.RecordSubscribedTopics(len(s.topics))
	s.logger.Info("subscribed to topics", "topics", len(s.topics))

	return nil
}

// SubscribePattern declares interest in every topic matching the pattern.
// The effective topic set is resolved externally against live metadata and
// pushed in via SubscribeFromPattern; the concrete partition set arrives via
// AssignFromSubscribed.
//
// Candidate topics are validated against the full topic name: a pattern of
// "orders" matches the topic "orders", not "orders-dlq".
//
// Parameters:
//   - pattern: Compiled topic pattern (must be non-nil)
//   - listener: Rebalance callbacks for subsequent AssignFromSubscribed calls
//     (may be nil for no callbacks)
//
// Returns:
//   - error: ErrInvalidConfig for a nil pattern; ErrModeConflict if topics or
//     partitions are already subscribed
func (s *SubscriptionState) SubscribePattern(pattern *regexp.Regexp, listener RebalanceListener) error {
	if pattern == nil {
		return fmt.Errorf("%w: subscribe pattern must not be nil", ErrInvalidConfig)
	}

	matcher, err := regexp.Compile("^(?:" + pattern.String() + ")$")
	if err != nil {
		return fmt.Errorf("%w: cannot anchor pattern %q: %s", ErrInvalidConfig, pattern.String(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setMode(ModePattern); err != nil {
		return err
	}

	s.pattern = pattern
	s.matcher = matcher
	s.listener = listener

	s.logger.Info("subscribed to pattern", "pattern", pattern.String())

	return nil
}

// SubscribeFromPattern installs the topic set resolved for the subscribed
// pattern by the caller's metadata layer. The assignment table is untouched.
//
// Parameters:
//   - topics: Topics currently matching the pattern per broker metadata
//
// Returns:
//   - error: ErrIllegalMode unless a pattern subscription is active
func (s *SubscriptionState) SubscribeFromPattern(topics []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModePattern {
		return fmt.Errorf("%w: SubscribeFromPattern requires a pattern subscription, mode is %s",
			ErrIllegalMode, s.mode)
	}

	s.matched = make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		s.matched[topic] = struct{}{}
	}

	s.metrics.RecordSubscribedTopics(len(s.matched))
	s.logger.Debug("pattern subscription resolved", "topics", len(s.matched))

	return nil
}

// AssignFromUser explicitly assigns the given partitions, bypassing any
// coordinator. The assignment table is replaced wholesale with fresh,
// positionless entries; no subscription validation is performed and no
// rebalance callbacks fire — manual assignment is authoritative.
//
// Parameters:
//   - partitions: The new assignment (duplicates are collapsed, order kept)
//
// Returns:
//   - error: ErrModeConflict if topics or a pattern are already subscribed
func (s *SubscriptionState) AssignFromUser(partitions []TopicPartition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setMode(ModeUserAssigned); err != nil {
		return err
	}

	if s.table.Replace(partitions) {
		s.publishAssignmentLocked()
	}

	return nil
}

// AssignFromSubscribed commits a coordinator-proposed partition set derived
// from the active topic or pattern subscription.
//
// Validation is all-or-nothing: in Topics mode every candidate's topic must
// be a member of the subscribed set, in Pattern mode every candidate's topic
// must full-string-match the live pattern (deliberately independent of the
// cached SubscribeFromPattern resolution). If any candidate fails, nothing
// changes and the call returns false — rejection is a normal outcome when
// proposals race with subscription changes, not an error.
//
// On success the listener's revoke callback fires with the partitions leaving
// the assignment before the table is replaced, and the assign callback fires
// with the added partitions after.
//
// Parameters:
//   - partitions: Proposed assignment (duplicates are collapsed, order kept)
//
// Returns:
//   - bool: true if the proposal was committed, false if it was rejected
//   - error: ErrIllegalMode unless mode is Topics or Pattern
func (s *SubscriptionState) AssignFromSubscribed(partitions []TopicPartition) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mode.AutoAssigned() {
		return false, fmt.Errorf("%w: AssignFromSubscribed requires a topic or pattern subscription, mode is %s",
			ErrIllegalMode, s.mode)
	}

	for _, tp := range partitions {
		if !s.topicSubscribedLocked(tp.Topic) {
			s.metrics.RecordAssignmentRejected(s.mode)
			s.logger.Warn("rejected assignment proposal",
				"mode", s.mode,
				"topic", tp.Topic,
				"partitions", len(partitions),
			)

			return false, nil
		}
	}

	previous := s.table.Partitions()
	revoked, added := assignment.Diff(previous, partitions)

	// Revoke before the table is replaced so the listener still observes the
	// outgoing generation, assign after so it observes the new one.
	if s.listener != nil && len(revoked) > 0 {
		s.listener.OnPartitionsRevoked(revoked)
	}
	changed := s.table.Replace(partitions)
	if s.listener != nil && len(added) > 0 {
		s.listener.OnPartitionsAssigned(added)
	}

	if changed {
		s.publishAssignmentLocked()
	}

	return true, nil
}

// Unsubscribe resets the mode to None, clears the subscription data and
// listener, and empties the assignment table. Always succeeds.
func (s *SubscriptionState) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeNone {
		s.metrics.RecordModeChange(s.mode, ModeNone)
		s.logger.Info("unsubscribed", "previous_mode", s.mode)
	}
	s.mode = ModeNone
	s.topics = nil
	s.pattern = nil
	s.matcher = nil
	s.matched = nil
	s.listener = nil

	if s.table.Clear() {
		s.publishAssignmentLocked()
	}
	s.metrics.RecordSubscribedTopics(0)
}

// Seek unconditionally repositions the partition's cursor and clears any
// pending offset reset. The paused flag is untouched.
//
// Seek is the only operation that may establish the first position for a
// partition; fetch-driven UpdatePosition calls must build on it.
//
// Parameters:
//   - tp: Assigned partition to reposition
//   - pos: New cursor (validated)
//
// Returns:
//   - error: ErrNotAssigned if tp is not assigned; ErrInvalidPosition if pos
//     fails validation
func (s *SubscriptionState) Seek(tp TopicPartition, pos FetchPosition) error {
	if err := pos.Validate(); err != nil {
		return fmt.Errorf("seek %s: %w", tp, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return fmt.Errorf("seek %s: %w", tp, ErrNotAssigned)
	}

	state.Seek(pos)
	s.metrics.RecordSeek()
	s.logger.Debug("seek", "partition", tp.String(), "offset", pos.Offset)

	return nil
}

// SeekOffset is a convenience Seek to a bare offset with no epoch
// information, as used by user-driven repositioning.
//
// Parameters:
//   - tp: Assigned partition to reposition
//   - offset: New offset (must be >= 0)
//
// Returns:
//   - error: Same contract as Seek
func (s *SubscriptionState) SeekOffset(tp TopicPartition, offset int64) error {
	return s.Seek(tp, FetchPosition{Offset: offset, LeaderEpoch: LeaderAndEpoch{Leader: NoLeader}})
}

// UpdatePosition records fetch-driven progress for an assigned partition.
// Unlike Seek it refuses to seed the first position: an established anchor is
// required so fetch responses can only ever build on a trusted seek.
//
// Parameters:
//   - tp: Assigned partition the fetch response belongs to
//   - pos: Position after consuming the response (validated)
//
// Returns:
//   - error: ErrNotAssigned if tp is not assigned; ErrInvalidTransition if no
//     position is established; ErrInvalidPosition if pos fails validation
func (s *SubscriptionState) UpdatePosition(tp TopicPartition, pos FetchPosition) error {
	if err := pos.Validate(); err != nil {
		return fmt.Errorf("update position %s: %w", tp, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return fmt.Errorf("update position %s: %w", tp, ErrNotAssigned)
	}
	if err := state.Update(pos); err != nil {
		return fmt.Errorf("update position %s: %w", tp, err)
	}

	return nil
}

// Position returns the partition's current cursor.
//
// Parameters:
//   - tp: Assigned partition to query
//
// Returns:
//   - *FetchPosition: Current position, or nil if none established yet (a
//     stale position is still returned while a reset is pending)
//   - error: ErrNotAssigned if tp is not assigned
func (s *SubscriptionState) Position(tp TopicPartition) (*FetchPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return nil, fmt.Errorf("position %s: %w", tp, ErrNotAssigned)
	}

	return state.Position(), nil
}

// RequestOffsetReset marks the partition as needing an offset reset; it stays
// non-fetchable until a subsequent Seek. The prior position, if any, is
// retained as a stale value.
//
// Parameters:
//   - tp: Assigned partition whose cursor is no longer valid
//   - policy: Reset policy (ResetPolicyDefault resolves to the configured
//     DefaultResetPolicy)
//
// Returns:
//   - error: ErrNotAssigned if tp is not assigned
func (s *SubscriptionState) RequestOffsetReset(tp TopicPartition, policy ResetPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return fmt.Errorf("request offset reset %s: %w", tp, ErrNotAssigned)
	}

	if policy == ResetPolicyDefault {
		policy = s.cfg.DefaultResetPolicy
	}
	state.RequestReset(policy)

	s.metrics.RecordOffsetReset(policy)
	s.logger.Info("offset reset requested", "partition", tp.String(), "policy", policy)

	return nil
}

// IsOffsetResetNeeded reports whether a reset is pending for tp. Unassigned
// partitions report false.
func (s *SubscriptionState) IsOffsetResetNeeded(tp TopicPartition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return false
	}
	_, pending := state.ResetPending()

	return pending
}

// OffsetResetPolicy returns the pending reset policy for tp.
//
// Returns:
//   - ResetPolicy: Policy recorded by RequestOffsetReset (meaningful only
//     when the bool is true)
//   - bool: true iff tp is assigned and a reset is pending
func (s *SubscriptionState) OffsetResetPolicy(tp TopicPartition) (ResetPolicy, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return ResetPolicyDefault, false
	}

	return state.ResetPending()
}

// Pause suspends fetching for the partition without touching its position.
// Idempotent.
//
// Returns:
//   - error: ErrNotAssigned if tp is not assigned
func (s *SubscriptionState) Pause(tp TopicPartition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return fmt.Errorf("pause %s: %w", tp, ErrNotAssigned)
	}

	state.Pause()
	s.metrics.RecordPausedPartitions(s.pausedCountLocked())

	return nil
}

// Resume lifts a pause. Idempotent; resuming restores exactly the
// fetchability state that existed before pausing.
//
// Returns:
//   - error: ErrNotAssigned if tp is not assigned
func (s *SubscriptionState) Resume(tp TopicPartition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return fmt.Errorf("resume %s: %w", tp, ErrNotAssigned)
	}

	state.Resume()
	s.metrics.RecordPausedPartitions(s.pausedCountLocked())

	return nil
}

// IsPaused reports whether fetching is suspended for tp. Unassigned
// partitions report false.
func (s *SubscriptionState) IsPaused(tp TopicPartition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return false
	}

	return state.Paused()
}

// UpdatePreferredReadReplica overwrites the partition's preferred
// read-replica lease. No prior clear is required.
//
// Parameters:
//   - tp: Assigned partition the lease applies to
//   - replica: Broker ID of the preferred read replica
//   - expiryTimeMs: Absolute lease deadline in the caller's clock domain
//
// Returns:
//   - error: ErrNotAssigned if tp is not assigned
func (s *SubscriptionState) UpdatePreferredReadReplica(tp TopicPartition, replica int32, expiryTimeMs int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return fmt.Errorf("update preferred read replica %s: %w", tp, ErrNotAssigned)
	}

	state.SetPreferredReplica(replica, expiryTimeMs)
	s.logger.Debug("preferred read replica updated",
		"partition", tp.String(),
		"replica", replica,
		"expiry_ms", expiryTimeMs,
	)

	return nil
}

// PreferredReadReplica returns the leased read replica for tp if the lease is
// still valid at nowMs. The clock is an explicit parameter so callers control
// the time source; reads never evict an expired lease.
//
// Returns:
//   - int32: Replica ID (meaningful only when the bool is true)
//   - bool: true iff tp is assigned, a lease exists, and nowMs <= its expiry
func (s *SubscriptionState) PreferredReadReplica(tp TopicPartition, nowMs int64) (int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return 0, false
	}

	return state.PreferredReplica(nowMs)
}

// ClearPreferredReadReplica removes the partition's read-replica lease.
//
// Returns:
//   - error: ErrNotAssigned if tp is not assigned
func (s *SubscriptionState) ClearPreferredReadReplica(tp TopicPartition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return fmt.Errorf("clear preferred read replica %s: %w", tp, ErrNotAssigned)
	}

	state.ClearPreferredReplica()

	return nil
}

// Mode returns the current subscription mode.
func (s *SubscriptionState) Mode() SubscriptionMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode
}

// PartitionsAutoAssigned reports whether partitions are assigned by an
// external coordinator (Topics or Pattern mode).
func (s *SubscriptionState) PartitionsAutoAssigned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode.AutoAssigned()
}

// Subscription returns the effective subscribed topic set, sorted: the
// declared topics in Topics mode, the resolved matched topics in Pattern
// mode, and nil otherwise.
func (s *SubscriptionState) Subscription() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var set map[string]struct{}
	switch s.mode {
	case ModeTopics:
		set = s.topics
	case ModePattern:
		set = s.matched
	default:
		return nil
	}

	out := make([]string, 0, len(set))
	for topic := range set {
		out = append(out, topic)
	}
	sort.Strings(out)

	return out
}

// AssignedPartitions returns the assigned partition set in insertion order.
func (s *SubscriptionState) AssignedPartitions() []TopicPartition {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Partitions()
}

// NumAssignedPartitions returns the number of assigned partitions.
func (s *SubscriptionState) NumAssignedPartitions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Len()
}

// IsAssigned reports whether tp is in the current assignment.
func (s *SubscriptionState) IsAssigned(tp TopicPartition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Contains(tp)
}

// AssignmentVersion returns the current assignment version. The version
// starts at 0 and increments exactly once per change to the assigned
// partition set, letting collaborators detect staleness of in-flight work.
func (s *SubscriptionState) AssignmentVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.Version()
}

// IsFetchable reports whether tp may be handed to the fetch engine: assigned,
// not paused, no pending reset, and a position established. Unassigned
// partitions report false.
func (s *SubscriptionState) IsFetchable(tp TopicPartition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return false
	}

	return state.Fetchable()
}

// HasValidPosition reports whether tp holds an established position not
// superseded by a pending reset. Unassigned partitions report false.
func (s *SubscriptionState) HasValidPosition(tp TopicPartition) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.table.Get(tp)
	if !ok {
		return false
	}

	return state.HasValidPosition()
}

// HasAllFetchPositions reports whether every assigned partition holds a valid
// position. An empty assignment reports true vacuously.
func (s *SubscriptionState) HasAllFetchPositions() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := true
	s.table.Range(func(_ TopicPartition, state *assignment.PartitionState) bool {
		if !state.HasValidPosition() {
			all = false
			return false
		}

		return true
	})

	return all
}

// FetchablePartitions returns the currently fetchable partitions in insertion
// order. This is the fetch scheduler's iteration set.
func (s *SubscriptionState) FetchablePartitions() []TopicPartition {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []TopicPartition
	s.table.Range(func(tp TopicPartition, state *assignment.PartitionState) bool {
		if state.Fetchable() {
			out = append(out, tp)
		}

		return true
	})

	return out
}

// PausedPartitions returns the currently paused partitions in insertion order.
func (s *SubscriptionState) PausedPartitions() []TopicPartition {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []TopicPartition
	s.table.Range(func(tp TopicPartition, state *assignment.PartitionState) bool {
		if state.Paused() {
			out = append(out, tp)
		}

		return true
	})

	return out
}

// setMode enforces mode exclusivity. Caller must hold s.mu.
func (s *SubscriptionState) setMode(to SubscriptionMode) error {
	if s.mode != ModeNone && s.mode != to {
		return fmt.Errorf("%w: cannot change from %s to %s", ErrModeConflict, s.mode, to)
	}
	if s.mode != to {
		s.metrics.RecordModeChange(s.mode, to)
		s.mode = to
	}

	return nil
}

// topicSubscribedLocked validates one candidate topic against the active
// subscription. Caller must hold s.mu and have checked the mode.
func (s *SubscriptionState) topicSubscribedLocked(topic string) bool {
	if s.mode == ModePattern {
		// Always re-check the live pattern rather than the cached matched
		// set: proposals for freshly created topics that match must not be
		// rejected just because metadata resolution has not caught up.
		return s.matcher != nil && s.matcher.MatchString(topic)
	}

	_, ok := s.topics[topic]

	return ok
}

// pausedCountLocked counts paused partitions. Caller must hold s.mu.
func (s *SubscriptionState) pausedCountLocked() int {
	count := 0
	s.table.Range(func(_ TopicPartition, state *assignment.PartitionState) bool {
		if state.Paused() {
			count++
		}

		return true
	})

	return count
}
