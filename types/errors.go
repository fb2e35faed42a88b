package types

import "errors"

// Sentinel errors for the Substate library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap them with context using fmt.Errorf("%s: %w", msg, err).
//
// Every error below is a programming-contract violation surfaced immediately
// to the caller: none is retried internally and none represents a recoverable
// I/O condition. A rejected AssignFromSubscribed batch is deliberately NOT an
// error — coordinator proposals are expected to occasionally race with
// subscription changes, so rejection is a normal boolean outcome.

// Subscription mode errors.
var (
	// ErrModeConflict is returned when a call attempts to establish a
	// subscription mode different from the already-established one.
	ErrModeConflict = errors.New("subscription to topics, partitions, and patterns are mutually exclusive")

	// ErrIllegalMode is returned when an operation is not permitted in the
	// current subscription mode (e.g. AssignFromSubscribed without an active
	// topic or pattern subscription).
	ErrIllegalMode = errors.New("operation not permitted in current subscription mode")
)

// Per-partition operation errors.
var (
	// ErrNotAssigned is returned when a per-partition operation targets a
	// partition absent from the current assignment.
	ErrNotAssigned = errors.New("partition is not assigned")

	// ErrInvalidTransition is returned when a fetch-result position update
	// arrives before a seek has established a baseline position.
	ErrInvalidTransition = errors.New("cannot set a new position without an established one")

	// ErrInvalidPosition is returned when a fetch position fails construction
	// validation (negative offset).
	ErrInvalidPosition = errors.New("fetch position offset must not be negative")
)

// Configuration errors.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)
