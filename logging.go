// logging.go — structured logging interface for the coro package.
//
// A small interface so the scheduler can report swallowed per-coroutine
// failures without forcing a specific logging framework on every embedder.
// A production backend wiring github.com/joeycumines/logiface and
// github.com/joeycumines/stumpy lives in logging_logiface.go.
package coro

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// LogLevel is the severity of a [LogEntry].
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// LogEntry is a single structured log record emitted by the scheduler.
type LogEntry struct {
	Level     LogLevel
	Category  string // "scheduler", "coroutine", "stackpool", "notify"
	Message   string
	Err       error
	Timestamp time.Time
}

// Logger is the structured logging interface used throughout the package.
type Logger interface {
	Log(entry LogEntry)
	IsEnabled(level LogLevel) bool
}

// noOpLogger discards everything; it is the default for a [Scheduler] that
// isn't given a [Logger] via [WithLogger].
type noOpLogger struct{}

// NewNoOpLogger returns a [Logger] that discards every entry.
func NewNoOpLogger() Logger { return noOpLogger{} }

func (noOpLogger) Log(LogEntry)            {}
func (noOpLogger) IsEnabled(LogLevel) bool { return false }

// DefaultLogger is a minimal Logger writing newline-delimited text to an
// *os.File, for use outside of a logiface-equipped embedder.
type DefaultLogger struct {
	level atomic.Int32
	mu    sync.Mutex
	Out   *os.File
}

// NewDefaultLogger constructs a [DefaultLogger] writing to os.Stderr at the
// given minimum level.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	l := &DefaultLogger{Out: os.Stderr}
	l.level.Store(int32(level))
	return l
}

func (l *DefaultLogger) IsEnabled(level LogLevel) bool {
	return level >= LogLevel(l.level.Load())
}

func (l *DefaultLogger) Log(entry LogEntry) {
	if !l.IsEnabled(entry.Level) {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry.Err != nil {
		fmt.Fprintf(l.Out, "%s %s [%s] %s: %v\n",
			entry.Timestamp.Format("15:04:05.000"), entry.Level, entry.Category, entry.Message, entry.Err)
		return
	}
	fmt.Fprintf(l.Out, "%s %s [%s] %s\n",
		entry.Timestamp.Format("15:04:05.000"), entry.Level, entry.Category, entry.Message)
}
