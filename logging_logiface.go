package coro

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// logifaceLogger adapts a github.com/joeycumines/logiface Logger (backed by
// the github.com/joeycumines/stumpy JSON event encoder — the same pairing
// used elsewhere in the source this package is grounded on) to the package's
// own [Logger] interface.
type logifaceLogger struct {
	l *logiface.Logger[*stumpy.Event]
}

// NewStumpyLogger builds a [Logger] that writes structured JSON via
// logiface + stumpy at the given minimum level.
func NewStumpyLogger(level logiface.Level) Logger {
	return &logifaceLogger{
		l: stumpy.L.New(stumpy.L.WithLevel(level)),
	}
}

func (a *logifaceLogger) IsEnabled(level LogLevel) bool {
	return a.l.Build(toLogifaceLevel(level)) != nil
}

func (a *logifaceLogger) Log(entry LogEntry) {
	b := a.l.Build(toLogifaceLevel(entry.Level))
	if b == nil {
		return
	}
	b = b.Str("category", entry.Category)
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func toLogifaceLevel(level LogLevel) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
