package substate

import (
	"log/slog"

	"github.com/arloliu/substate/internal/logging"
)

// NewSlogLogger creates a Logger backed by the given slog.Logger.
//
// Parameters:
//   - logger: Underlying structured logger (nil uses slog.Default)
//
// Returns:
//   - Logger: Adapter suitable for WithLogger
//
// Example:
//
//	handler := slog.NewJSONHandler(os.Stderr, nil)
//	state, err := substate.New(nil, substate.WithLogger(substate.NewSlogLogger(slog.New(handler))))
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return logging.NewSlogDefault()
	}

	return logging.NewSlog(logger)
}

// NewNopLogger creates a Logger that discards all messages. This is the
// default when no WithLogger option is supplied.
func NewNopLogger() Logger {
	return logging.NewNop()
}
