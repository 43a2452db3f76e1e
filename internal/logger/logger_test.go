package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestJSONLogging(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{
		Level:       LogLevelInfo,
		Format:      LogFormatJSON,
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: EnvironmentTest,
	}, &buf)

	slog.Info("winner drawn", "group", "Gold", "seq", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry[AttrKeyService])
	assert.Equal(t, "1.0.0", entry[AttrKeyVersion])
	assert.Equal(t, EnvironmentTest, entry[AttrKeyEnvironment])
	assert.Equal(t, "winner drawn", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "Gold", entry["group"])
	assert.Equal(t, float64(3), entry["seq"])
}

func TestTextLoggingRespectsLevel(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{Level: LogLevelWarn, Format: LogFormatText}, &buf)

	slog.Info("hidden")
	slog.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.NotContains(t, out, AttrKeyVersion+"=", "empty version is left out")
}

func TestFromContext(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: LogLevelDebug, Format: LogFormatJSON}, &buf)

	sessionID := uuid.MustParse("6f1c2a9e-8d1b-4b7a-9a43-3a4e2f0a1b2c")
	ctx := WithSessionID(WithRequestID(context.Background(), "test-req-123"), sessionID)
	assert.Equal(t, "test-req-123", GetRequestID(ctx))
	got, ok := SessionIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, sessionID, got)

	FromContext(ctx).Info("with ids")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-req-123", entry[AttrKeyRequestID])
	assert.Equal(t, sessionID.String(), entry[AttrKeySessionID])

	assert.Empty(t, GetRequestID(context.Background()))
	_, ok = SessionIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), in)
	}
}

func TestForEnvironment(t *testing.T) {
	prod := ForEnvironment(EnvironmentProduction, DefaultServiceName, "1.2.0")
	assert.True(t, prod.IsJSON())
	assert.Equal(t, LogLevelInfo, prod.Level)
	assert.False(t, prod.AddSource)
	assert.Equal(t, "1.2.0", prod.Version)

	dev := ForEnvironment(EnvironmentDev, DefaultServiceName, "dev")
	assert.False(t, dev.IsJSON())
	assert.Equal(t, LogLevelDebug, dev.Level)
	assert.True(t, dev.AddSource)
}
