package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const mockLogLevel int8 = 0 // zapcore.InfoLevel

func TestGetReturnsSameInstance(t *testing.T) {
	logger1 := Get(mockLogLevel)
	logger2 := Get(-2)
	require.NotNil(t, logger1)
	assert.Same(t, logger1, logger2)
}

func TestGetReturnsNoopLoggerIfGlobalLoggerNil(t *testing.T) {
	Get(mockLogLevel)
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, Get(mockLogLevel))
}

func TestNewWritesJSONWithBuildFields(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(-1, zapcore.AddSync(&buf))

	lgr.V(1).Info("loaded", PathKey, "a/b", FormatKey, "json")
	lgr.V(2).Info("too verbose")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "loaded", entry[MessageKey])
	assert.Equal(t, "a/b", entry[PathKey])
	assert.Equal(t, "json", entry[FormatKey])
	assert.Contains(t, entry, TimeStampKey)
	assert.Contains(t, entry, CommitKey)
	assert.Contains(t, entry, GoVersionKey)
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger1 := Get(mockLogLevel)

	withFirst := WithLogger(ctx, logger1)
	assert.Same(t, logger1, withFirst.Value(loggerContextKey{}))

	t.Run("same logger keeps the context", func(t *testing.T) {
		assert.Equal(t, withFirst, WithLogger(withFirst, logger1))
	})

	t.Run("different logger replaces it", func(t *testing.T) {
		logger2 := logr.Discard()
		replaced := WithLogger(withFirst, &logger2)
		assert.Same(t, &logger2, FromContext(replaced))
	})
}

func TestFromContext(t *testing.T) {
	global := Get(mockLogLevel)
	assert.Same(t, global, FromContext(context.Background()))

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(errors.New("sync /dev/stderr: The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	logger := Get(mockLogLevel)
	newLogger := WithValues(logger, "testKey", "testValue")
	require.NotNil(t, newLogger)
	assert.NotSame(t, logger, newLogger)
}
