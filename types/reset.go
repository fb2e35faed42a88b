package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResetPolicy selects where a partition's cursor is repositioned when the
// current offset is no longer valid (e.g. out of range).
//
// The policy is recorded when a reset is requested and consumed by the
// caller's offset-lookup machinery; this library only tracks it.
type ResetPolicy int

const (
	// ResetPolicyDefault defers to the configured default policy.
	ResetPolicyDefault ResetPolicy = iota

	// ResetPolicyEarliest repositions to the earliest available offset.
	ResetPolicyEarliest

	// ResetPolicyLatest repositions to the latest available offset.
	ResetPolicyLatest

	// ResetPolicyNone forbids automatic repositioning; the caller surfaces
	// the out-of-range condition to the application instead.
	ResetPolicyNone
)

// String returns the string representation of the policy.
func (p ResetPolicy) String() string {
	switch p {
	case ResetPolicyDefault:
		return "default"
	case ResetPolicyEarliest:
		return "earliest"
	case ResetPolicyLatest:
		return "latest"
	case ResetPolicyNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseResetPolicy converts a string form (as used in configuration files)
// back into a ResetPolicy.
//
// Parameters:
//   - s: One of "default", "earliest", "latest", "none" (empty means default)
//
// Returns:
//   - ResetPolicy: The parsed policy
//   - error: Descriptive error for unrecognized values
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch s {
	case "", "default":
		return ResetPolicyDefault, nil
	case "earliest":
		return ResetPolicyEarliest, nil
	case "latest":
		return ResetPolicyLatest, nil
	case "none":
		return ResetPolicyNone, nil
	default:
		return ResetPolicyDefault, fmt.Errorf("unrecognized reset policy %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler so Config files can spell the
// policy as a plain string.
func (p *ResetPolicy) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	parsed, err := ParseResetPolicy(s)
	if err != nil {
		return err
	}
	*p = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting the string form.
func (p ResetPolicy) MarshalYAML() (any, error) {
	return p.String(), nil
}
