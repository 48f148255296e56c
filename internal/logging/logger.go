// Package logging provides the structured logging abstraction used by every
// spendlens component. Components depend on the Logger interface and never on
// logrus directly, so tests can substitute MockLogger.
package logging

import (
	"os"
	"strings"
	"sync"
)

// Logger defines structured logging for the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// GetLogger returns the process-wide fallback logger, configured from the
// LOG_LEVEL and LOG_FORMAT environment variables. Components constructed with
// a nil logger use it.
func GetLogger() Logger {
	defaultOnce.Do(func() {
		level := strings.ToLower(os.Getenv("LOG_LEVEL"))
		if level == "" {
			level = "info"
		}
		defaultLogger = NewLogrusAdapter(level, strings.ToLower(os.Getenv("LOG_FORMAT")))
	})
	return defaultLogger
}

// OrDefault returns l, or the fallback logger when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return GetLogger()
	}
	return l
}
