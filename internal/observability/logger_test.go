package observability

import (
	"bytes"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nachiketsane1912/habit-impact-coach/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer adapts bytes.Buffer to zapcore.WriteSyncer.
type syncBuffer struct{ bytes.Buffer }

func (s *syncBuffer) Sync() error { return nil }

func TestInitialize_WritesNamedConsoleOutput(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &syncBuffer{}
	Initialize(config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "habitcoach-test",
	}, zapcore.Lock(buf))

	logger := GetLogger()
	require.NotNil(t, logger)
	logger.Info("hydrated collections", zap.Int("logs", 30))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "hydrated collections")
	assert.Contains(t, out, "habitcoach-test")
	assert.Contains(t, out, `"logs":30`)
}

func TestInitialize_RunsOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	first := &syncBuffer{}
	second := &syncBuffer{}
	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "one"}, zapcore.Lock(first))
	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "two"}, zapcore.Lock(second))

	GetLogger().Info("only the first writer receives this")
	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestGetLogger_FallbackBeforeInitialize(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	assert.NotNil(t, GetLogger())
}

func TestInitialize_InvalidLevelDefaultsToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &syncBuffer{}
	Initialize(config.LoggerConfig{Level: "chatty", Format: "json", ServiceName: "t"}, zapcore.Lock(buf))

	GetLogger().Debug("below info, suppressed")
	GetLogger().Info("at info, emitted")
	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), "emitted")
}
