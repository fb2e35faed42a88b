package substate

import "github.com/arloliu/substate/types"

// Sentinel errors returned by SubscriptionState, re-exported from the types
// package so callers can use errors.Is without an extra import.
var (
	// ErrModeConflict is returned when a call attempts to establish a
	// subscription mode different from the already-established one.
	ErrModeConflict = types.ErrModeConflict

	// ErrIllegalMode is returned when an operation is not permitted in the
	// current subscription mode.
	ErrIllegalMode = types.ErrIllegalMode

	// ErrNotAssigned is returned when a per-partition operation targets a
	// partition absent from the current assignment.
	ErrNotAssigned = types.ErrNotAssigned

	// ErrInvalidTransition is returned when a fetch-result position update
	// arrives before a seek has established a baseline position.
	ErrInvalidTransition = types.ErrInvalidTransition

	// ErrInvalidPosition is returned when a fetch position fails construction
	// validation.
	ErrInvalidPosition = types.ErrInvalidPosition

	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig
)
