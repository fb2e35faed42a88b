package substate

import "github.com/arloliu/substate/types"

// Re-export types from the internal types package.
//
// This file provides a stable, backward-compatible public API for the library's
// core types and interfaces. It uses type aliases to re-export definitions
// from the `types` subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal packages
// to depend on `types` without depending on the root `substate` package, while
// still providing a convenient `substate.TopicPartition`, `substate.Logger`,
// etc. for users.
type (
	TopicPartition     = types.TopicPartition
	FetchPosition      = types.FetchPosition
	LeaderAndEpoch     = types.LeaderAndEpoch
	SubscriptionMode   = types.SubscriptionMode
	ResetPolicy        = types.ResetPolicy
	AssignmentSnapshot = types.AssignmentSnapshot
)

// Re-export interfaces from the internal types package for convenience.
type (
	RebalanceListener = types.RebalanceListener
	ListenerFuncs     = types.ListenerFuncs
	Logger            = types.Logger
	MetricsCollector  = types.MetricsCollector
)

// Re-export SubscriptionMode constants from the internal types package.
const (
	ModeNone         = types.ModeNone
	ModeTopics       = types.ModeTopics
	ModePattern      = types.ModePattern
	ModeUserAssigned = types.ModeUserAssigned
)

// Re-export ResetPolicy constants from the internal types package.
const (
	ResetPolicyDefault  = types.ResetPolicyDefault
	ResetPolicyEarliest = types.ResetPolicyEarliest
	ResetPolicyLatest   = types.ResetPolicyLatest
	ResetPolicyNone     = types.ResetPolicyNone
)

// NoLeader is the Leader value of a LeaderAndEpoch whose leader is unknown.
const NoLeader = types.NoLeader
