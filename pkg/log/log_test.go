package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLoggerCapturesOutput(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Info("fold dispatched", FoldIndexKey, 3, FoldCountKey, 10)

	out := buffer.String()
	assert.Contains(t, out, "INFO fold dispatched")
	assert.Contains(t, out, "fold.index=3")
	assert.Contains(t, out, "fold.count=10")
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, buffer := NewTestLogger(LevelWarn)

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buffer.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN visible")
}

func TestWithChainsFields(t *testing.T) {
	logger, buffer := NewTestLogger(LevelInfo)

	named := logger.With(ComponentKey, "cv.executor")
	named.Info("run started", ConcurrencyKey, 4)

	out := buffer.String()
	assert.Contains(t, out, "component=cv.executor")
	assert.Contains(t, out, "cv.concurrency=4")
}

func TestGetLoggerWithName(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)
	old := GetLogger()
	SetDefault(logger)
	defer SetDefault(old)

	GetLoggerWithName("fold.generate").Debug("generating")

	require.Contains(t, buffer.String(), "component=fold.generate")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
