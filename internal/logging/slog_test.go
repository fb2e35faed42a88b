package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level slog.Level) (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})

	return NewSlog(slog.New(handler)), buf
}

func TestNewSlog(t *testing.T) {
	logger, _ := newBufferedLogger(slog.LevelDebug)

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestNewSlogDefault(t *testing.T) {
	logger := NewSlogDefault()

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestSlogLogger_Debug(t *testing.T) {
	logger, buf := newBufferedLogger(slog.LevelDebug)

	logger.Debug("debug message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=DEBUG")
}

func TestSlogLogger_Info(t *testing.T) {
	logger, buf := newBufferedLogger(slog.LevelInfo)

	logger.Info("info message", "topic", "orders")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "topic=orders")
	assert.Contains(t, output, "level=INFO")
}

func TestSlogLogger_Warn(t *testing.T) {
	logger, buf := newBufferedLogger(slog.LevelWarn)

	logger.Warn("warning message", "mode", "Pattern")

	output := buf.String()
	assert.Contains(t, output, "warning message")
	assert.Contains(t, output, "mode=Pattern")
	assert.Contains(t, output, "level=WARN")
}

func TestSlogLogger_Error(t *testing.T) {
	logger, buf := newBufferedLogger(slog.LevelError)

	logger.Error("error message", "partition", "orders-0")

	output := buf.String()
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, "partition=orders-0")
	assert.Contains(t, output, "level=ERROR")
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(slog.LevelWarn)

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "visible")
}
