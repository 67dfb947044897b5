package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level is the minimum severity that gets written
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Fields are structured key/value pairs attached to a log entry
type Fields map[string]any

var (
	mu  sync.RWMutex
	std = newLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, LevelInfo)
)

func newLogger(w io.Writer, level Level) zerolog.Logger {
	return zerolog.New(w).Level(toZerolog(level)).With().Timestamp().Logger()
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel maps a config string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel changes the minimum level of the global logger
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	std = std.Level(toZerolog(level))
}

// SetOutput replaces the writer. json=false uses the human console format.
func SetOutput(w io.Writer, json bool) {
	mu.Lock()
	defer mu.Unlock()

	level := std.GetLevel()
	if json {
		std = zerolog.New(w).Level(level).With().Timestamp().Logger()
		return
	}
	std = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}).
		Level(level).With().Timestamp().Logger()
}

// Logger exposes the underlying zerolog logger
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := std
	return &l
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// ============================================================================
// Package-level helpers
// ============================================================================

func Debug(args ...any) { l := current(); l.Debug().Msg(fmt.Sprint(args...)) }
func Info(args ...any)  { l := current(); l.Info().Msg(fmt.Sprint(args...)) }
func Warn(args ...any)  { l := current(); l.Warn().Msg(fmt.Sprint(args...)) }
func Error(args ...any) { l := current(); l.Error().Msg(fmt.Sprint(args...)) }

func Debugf(format string, args ...any) { l := current(); l.Debug().Msgf(format, args...) }
func Infof(format string, args ...any)  { l := current(); l.Info().Msgf(format, args...) }
func Warnf(format string, args ...any)  { l := current(); l.Warn().Msgf(format, args...) }
func Errorf(format string, args ...any) { l := current(); l.Error().Msgf(format, args...) }

// Fatal logs and exits the process
func Fatal(args ...any) { l := current(); l.Fatal().Msg(fmt.Sprint(args...)) }

// Fatalf logs and exits the process
func Fatalf(format string, args ...any) { l := current(); l.Fatal().Msgf(format, args...) }

// ============================================================================
// Entry
// ============================================================================

// Entry is a logger bound to a set of fields
type Entry struct {
	logger zerolog.Logger
}

// WithFields returns an entry that writes the given fields on every call
func WithFields(fields Fields) *Entry {
	return &Entry{logger: current().With().Fields(map[string]any(fields)).Logger()}
}

// WithField is a shortcut for a single field
func WithField(key string, value any) *Entry {
	return WithFields(Fields{key: value})
}

func (e *Entry) Debugf(format string, args ...any) { e.logger.Debug().Msgf(format, args...) }
func (e *Entry) Infof(format string, args ...any)  { e.logger.Info().Msgf(format, args...) }
func (e *Entry) Warnf(format string, args ...any)  { e.logger.Warn().Msgf(format, args...) }
func (e *Entry) Errorf(format string, args ...any) { e.logger.Error().Msgf(format, args...) }

func (e *Entry) Debug(args ...any) { e.logger.Debug().Msg(fmt.Sprint(args...)) }
func (e *Entry) Info(args ...any)  { e.logger.Info().Msg(fmt.Sprint(args...)) }
func (e *Entry) Warn(args ...any)  { e.logger.Warn().Msg(fmt.Sprint(args...)) }
func (e *Entry) Error(args ...any) { e.logger.Error().Msg(fmt.Sprint(args...)) }
