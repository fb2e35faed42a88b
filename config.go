package substate

import (
	"fmt"

	"github.com/arloliu/substate/types"
	"gopkg.in/yaml.v3"
)

// Config is the configuration for a SubscriptionState.
//
// The zero value is usable after SetDefaults; New applies defaults and
// validation automatically.
type Config struct {
	// DefaultResetPolicy is the offset reset policy applied when
	// RequestOffsetReset is called with ResetPolicyDefault.
	//
	// Must resolve to a concrete policy: "earliest", "latest", or "none".
	// Default: "earliest".
	DefaultResetPolicy types.ResetPolicy `yaml:"defaultResetPolicy"`

	// WatchBufferSize is the channel buffer of each assignment watcher
	// registered via Watch. A buffer of a few entries lets rapid assignment
	// generations queue without dropping snapshots when a watcher is slow.
	//
	// Default: 4.
	WatchBufferSize int `yaml:"watchBufferSize"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		DefaultResetPolicy: types.ResetPolicyEarliest,
		WatchBufferSize:    4,
	}
}

// SetDefaults fills unset fields of cfg with the DefaultConfig values.
//
// Parameters:
//   - cfg: Configuration to complete in place
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.DefaultResetPolicy == types.ResetPolicyDefault {
		cfg.DefaultResetPolicy = defaults.DefaultResetPolicy
	}
	if cfg.WatchBufferSize == 0 {
		cfg.WatchBufferSize = defaults.WatchBufferSize
	}
}

// Validate checks configuration constraints and returns an error for invalid values.
//
// Hard validation rules:
//   - DefaultResetPolicy must be a concrete policy (not ResetPolicyDefault,
//     which would make the default self-referential)
//   - WatchBufferSize must be positive
//
// Returns:
//   - error: Validation error wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	switch cfg.DefaultResetPolicy {
	case types.ResetPolicyEarliest, types.ResetPolicyLatest, types.ResetPolicyNone:
	default:
		return fmt.Errorf("%w: DefaultResetPolicy must be earliest, latest, or none, got %q",
			types.ErrInvalidConfig, cfg.DefaultResetPolicy)
	}

	if cfg.WatchBufferSize <= 0 {
		return fmt.Errorf("%w: WatchBufferSize must be > 0, got %d",
			types.ErrInvalidConfig, cfg.WatchBufferSize)
	}

	return nil
}

// ParseConfig decodes a YAML document into a Config, applies defaults, and
// validates the result.
//
// Parameters:
//   - data: YAML document (may be empty for an all-defaults config)
//
// Returns:
//   - Config: Parsed, defaulted, and validated configuration
//   - error: Decode or validation error
//
// Example:
//
//	cfg, err := substate.ParseConfig([]byte("defaultResetPolicy: latest\n"))
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s", types.ErrInvalidConfig, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
