// Package logging provides a simple leveled logger on top of log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelError + 4
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the line encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses a log format string. Unknown formats are text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// Logger is a simple leveled logger.
type Logger struct {
	mu     sync.Mutex
	level  Level
	format Format
	output io.Writer
	attrs  []any
	slog   *slog.Logger
}

// New creates a new text logger writing to stderr.
func New(level Level) *Logger {
	return NewWithFormat(level, FormatText)
}

// NewWithFormat creates a logger writing to stderr in the given format.
func NewWithFormat(level Level, format Format) *Logger {
	l := &Logger{
		level:  level,
		format: format,
		output: os.Stderr,
	}
	l.rebuild()
	return l
}

// rebuild recreates the slog handler. Callers hold mu, or own l exclusively.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level.slog()}
	var h slog.Handler
	if l.format == FormatJSON {
		h = slog.NewJSONHandler(l.output, opts)
	} else {
		h = slog.NewTextHandler(l.output, opts)
	}
	l.slog = slog.New(h).With(l.attrs...)
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// With returns a logger that adds the key/value pairs to every line.
func (l *Logger) With(args ...any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	child := &Logger{
		level:  l.level,
		format: l.format,
		output: l.output,
		attrs:  append(append([]any(nil), l.attrs...), args...),
	}
	child.rebuild()
	return child
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.slog
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	l.slog.Log(context.Background(), level.slog(), fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	l := &Logger{
		level:  LevelError + 1, // Higher than any level
		format: FormatText,
		output: io.Discard,
	}
	l.rebuild()
	return l
}
