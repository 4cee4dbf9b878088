// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lassie

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/go-logr/logr"
)

// MaxLogValueLength caps a single logged value; longer values are truncated
const MaxLogValueLength = 1024

// Logger receives the client's diagnostics as a message plus key/value pairs.
// DefaultLogger, LogrLogger and NoOpLogger (the default) implement it.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}

// LogLevel is the lowest severity a DefaultLogger writes
type LogLevel int

// Levels in increasing severity. LogLevelNone silences everything.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelNone
)

var logLevelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "NONE"}

// String returns the upper case level name
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(logLevelNames) {
		return fmt.Sprintf("UNKNOWN(%d)", int(l))
	}
	return logLevelNames[l]
}

// ParseLogLevel converts a level name (debug, info, warn, error, none) to a LogLevel
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none", "off":
		return LogLevelNone, nil
	default:
		return LogLevelNone, fmt.Errorf("invalid log level: %s (valid values: debug, info, warn, error, none)", name)
	}
}

// DefaultLogger writes "[LEVEL] message key=value ..." lines through the
// standard log package. Values are sanitized; the message is not.
//
// Example:
//
//	client, _ := lassie.NewClient(
//	    lassie.WithLogger(lassie.NewDefaultLogger(lassie.LogLevelDebug)))
type DefaultLogger struct {
	level LogLevel
}

// NewDefaultLogger returns a DefaultLogger writing level and above
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level}
}

func (l *DefaultLogger) Debug(_ context.Context, msg string, keysAndValues ...any) {
	l.write(LogLevelDebug, msg, keysAndValues)
}

func (l *DefaultLogger) Info(_ context.Context, msg string, keysAndValues ...any) {
	l.write(LogLevelInfo, msg, keysAndValues)
}

func (l *DefaultLogger) Warn(_ context.Context, msg string, keysAndValues ...any) {
	l.write(LogLevelWarn, msg, keysAndValues)
}

func (l *DefaultLogger) Error(_ context.Context, msg string, keysAndValues ...any) {
	l.write(LogLevelError, msg, keysAndValues)
}

func (l *DefaultLogger) write(level LogLevel, msg string, keysAndValues []any) {
	if level < l.level {
		return
	}
	line := "[" + level.String() + "] " + msg
	for i := 0; i < len(keysAndValues); i += 2 {
		value := "<MISSING>"
		if i+1 < len(keysAndValues) {
			value = sanitizeLogValue(keysAndValues[i+1])
		}
		line += " " + sanitizeLogValue(keysAndValues[i]) + "=" + value
	}
	log.Println(line)
}

// sanitizeLogValue renders val on a single line: line breaks and tabs become
// spaces, other control bytes and invalid UTF-8 become '.', zero-width
// characters are dropped and a right-to-left override becomes a space.
func sanitizeLogValue(val any) string {
	str := fmt.Sprint(val)
	truncated := len(str) > MaxLogValueLength
	if truncated {
		str = str[:MaxLogValueLength]
	}

	var builder strings.Builder
	builder.Grow(len(str))
	for _, r := range str {
		switch {
		case r == '\n', r == '\r', r == '\t', r == '\f', r == '\u202e':
			builder.WriteByte(' ')
		case r == '\u200b', r == '\u200c', r == '\u200d', r == '\ufeff':
		case r == utf8.RuneError, r < 0x20, r == 0x7f:
			builder.WriteByte('.')
		default:
			builder.WriteRune(r)
		}
	}
	if truncated {
		builder.WriteString("...[TRUNCATED]")
	}
	return builder.String()
}

// LogrLogger forwards log messages to a logr.Logger
//
// Debug messages are emitted at verbosity 1, Info and Warn at verbosity 0
// (Warn adds severity=warn), Error through logr's Error. When the context
// carries a logger (logr.NewContext), that logger is used instead.
//
// Example:
//
//	client, _ := lassie.NewClient(
//	    lassie.WithLogger(lassie.NewLogrLogger(logr.FromSlogHandler(handler))))
type LogrLogger struct {
	logger logr.Logger
}

// NewLogrLogger creates a LogrLogger writing to l
func NewLogrLogger(l logr.Logger) *LogrLogger {
	return &LogrLogger{logger: l}
}

func (l *LogrLogger) sink(ctx context.Context) logr.Logger {
	if ctx != nil {
		if fromCtx, err := logr.FromContext(ctx); err == nil {
			return fromCtx
		}
	}
	return l.logger
}

// Debug logs at verbosity 1
func (l *LogrLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.sink(ctx).V(1).Info(msg, keysAndValues...)
}

// Info logs at verbosity 0
func (l *LogrLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.sink(ctx).Info(msg, keysAndValues...)
}

// Warn logs at verbosity 0 with severity=warn
func (l *LogrLogger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	l.sink(ctx).Info(msg, append([]any{"severity", "warn"}, keysAndValues...)...)
}

// Error logs through logr's Error with a nil error
func (l *LogrLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.sink(ctx).Error(nil, msg, keysAndValues...)
}

// NoOpLogger discards everything; clients use it unless WithLogger is given
type NoOpLogger struct{}

func (n *NoOpLogger) Debug(context.Context, string, ...any) {}
func (n *NoOpLogger) Info(context.Context, string, ...any)  {}
func (n *NoOpLogger) Warn(context.Context, string, ...any)  {}
func (n *NoOpLogger) Error(context.Context, string, ...any) {}
