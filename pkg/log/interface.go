// Package log provides a structured logging interface for cross-validation runs.
//
// This package defines a minimal, slog-compatible logging interface that allows
// for flexible implementation switching while providing engine-specific
// structured logging. The interface integrates with Go's standard log/slog
// package and plays well with zerolog-backed sinks used elsewhere in the
// project.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("cv.executor")
//	logger.Debug("dispatching fold",
//	    log.FoldIndexKey, 3,
//	    log.FoldCountKey, 10,
//	)
package log

import (
	"log/slog"
	"sync"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface supports contextual field chaining through With, allowing
// loggers with pre-populated fields such as the executing component name.
type Logger interface {
	// Debug logs detailed diagnostic information, usually disabled in
	// production environments.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that deserve attention but do not stop a run.
	Warn(msg string, fields ...any)

	// Error logs failures. Pass the error itself via ErrAttr so the
	// stacktrace handler can expand it.
	Error(msg string, fields ...any)

	// With returns a logger that includes the given fields on every
	// subsequent message.
	With(fields ...any) Logger
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
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
		return "UNKNOWN"
	}
}

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = &slogLogger{l: slog.Default()}
)

// SetDefault replaces the package default logger. Useful in tests together
// with TestLogger.
func SetDefault(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// GetLogger returns the default logger instance.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns a logger tagged with a component identifier.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}
