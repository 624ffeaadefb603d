package coro

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoOpLogger_DiscardsEverything(t *testing.T) {
	l := NewNoOpLogger()
	require.False(t, l.IsEnabled(LevelError))
	l.Log(LogEntry{Level: LevelError, Message: "should go nowhere"}) // must not panic
}

func TestDefaultLogger_RespectsLevel(t *testing.T) {
	l := NewDefaultLogger(LevelWarn)
	require.False(t, l.IsEnabled(LevelDebug))
	require.False(t, l.IsEnabled(LevelInfo))
	require.True(t, l.IsEnabled(LevelWarn))
	require.True(t, l.IsEnabled(LevelError))
}

func TestDefaultLogger_WritesEntry(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	l := NewDefaultLogger(LevelInfo)
	l.Out = w
	l.Log(LogEntry{Level: LevelInfo, Category: "scheduler", Message: "hello"})
	w.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "hello")
	require.Contains(t, buf.String(), "scheduler")
}

func TestLogLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Contains(t, LogLevel(99).String(), "UNKNOWN")
}
