package substate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.Equal(t, ResetPolicyEarliest, cfg.DefaultResetPolicy)
	require.Equal(t, 4, cfg.WatchBufferSize)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		var cfg Config
		SetDefaults(&cfg)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("preserves explicit values", func(t *testing.T) {
		t.Parallel()

		cfg := Config{DefaultResetPolicy: ResetPolicyLatest, WatchBufferSize: 16}
		SetDefaults(&cfg)
		require.Equal(t, ResetPolicyLatest, cfg.DefaultResetPolicy)
		require.Equal(t, 16, cfg.WatchBufferSize)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid earliest",
			cfg:  Config{DefaultResetPolicy: ResetPolicyEarliest, WatchBufferSize: 4},
		},
		{
			name: "valid none policy",
			cfg:  Config{DefaultResetPolicy: ResetPolicyNone, WatchBufferSize: 1},
		},
		{
			name:    "default reset policy is self-referential",
			cfg:     Config{DefaultResetPolicy: ResetPolicyDefault, WatchBufferSize: 4},
			wantErr: true,
		},
		{
			name:    "zero watch buffer",
			cfg:     Config{DefaultResetPolicy: ResetPolicyLatest, WatchBufferSize: 0},
			wantErr: true,
		},
		{
			name:    "negative watch buffer",
			cfg:     Config{DefaultResetPolicy: ResetPolicyLatest, WatchBufferSize: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty document uses defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := ParseConfig(nil)
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Parallel()

		cfg, err := ParseConfig([]byte("defaultResetPolicy: latest\nwatchBufferSize: 8\n"))
		require.NoError(t, err)
		require.Equal(t, ResetPolicyLatest, cfg.DefaultResetPolicy)
		require.Equal(t, 8, cfg.WatchBufferSize)
	})

	t.Run("unknown policy", func(t *testing.T) {
		t.Parallel()

		_, err := ParseConfig([]byte("defaultResetPolicy: sideways\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := ParseConfig([]byte("defaultResetPolicy: [\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	cfg := Config{WatchBufferSize: -1}
	_, err := New(&cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
