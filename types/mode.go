package types

// SubscriptionMode describes how the consumer's partition set is derived.
//
// Modes are mutually exclusive: once a non-None mode is established, only the
// same mode may be re-issued (with new mode-local data); switching between two
// distinct non-None modes requires an explicit Unsubscribe first.
type SubscriptionMode int

const (
	// ModeNone is the initial mode before any subscription or assignment.
	ModeNone SubscriptionMode = iota

	// ModeTopics means the user declared interest in named topics and the
	// concrete partition set is pushed in by an external coordinator.
	ModeTopics

	// ModePattern means the user declared interest via a regular expression;
	// the effective topic set is resolved externally against live metadata.
	ModePattern

	// ModeUserAssigned means the user named partitions explicitly and no
	// coordinator-driven assignment takes place.
	ModeUserAssigned
)

// String returns the string representation of the mode.
func (m SubscriptionMode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeTopics:
		return "Topics"
	case ModePattern:
		return "Pattern"
	case ModeUserAssigned:
		return "UserAssigned"
	default:
		return "Unknown"
	}
}

// AutoAssigned reports whether partitions are assigned by an external
// coordinator in this mode (Topics or Pattern).
func (m SubscriptionMode) AutoAssigned() bool {
	return m == ModeTopics || m == ModePattern
}
