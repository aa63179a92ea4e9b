// Package logging provides the structured JSON logger used across the
// engine. Log entries are single-line JSON objects with a timestamp,
// level, message and optional fields.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents a log level.
type Level int

const (
	// DebugLevel logs are voluminous and usually disabled in production.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info but need no individual
	// review.
	WarnLevel
	// ErrorLevel logs are high-priority.
	ErrorLevel
)

// String returns the string representation of a log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, defaulting to Info.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return DebugLevel
	case "WARN", "warn", "WARNING", "warning":
		return WarnLevel
	case "ERROR", "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is the interface for structured logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// entry is the wire shape of one log line.
type entry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// JSONLogger writes one JSON object per log call.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	level  Level
	fields []Field
}

// NewJSONLogger creates a logger writing to the given writer at the
// given minimum level.
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{writer: writer, level: level}
}

// NewDefaultLogger creates a logger writing to stdout at the level named
// by the LOG_LEVEL environment variable, defaulting to Info.
func NewDefaultLogger() *JSONLogger {
	return NewJSONLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var fieldMap map[string]any
	if len(l.fields)+len(fields) > 0 {
		fieldMap = make(map[string]any, len(l.fields)+len(fields))
		for _, f := range l.fields {
			fieldMap[f.Key] = f.Value
		}
		for _, f := range fields {
			fieldMap[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry{
		Time:    time.Now().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
		Fields:  fieldMap,
	})
	if err != nil {
		fmt.Fprintf(l.writer, "[ERROR] failed to marshal log entry: %v\n", err)
		return
	}
	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

// Debug logs a debug-level message.
func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields...) }

// Info logs an info-level message.
func (l *JSONLogger) Info(msg string, fields ...Field) { l.log(InfoLevel, msg, fields...) }

// Warn logs a warning-level message.
func (l *JSONLogger) Warn(msg string, fields ...Field) { l.log(WarnLevel, msg, fields...) }

// Error logs an error-level message.
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields...) }

// With returns a child logger with the given fields pre-set.
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &JSONLogger{writer: l.writer, level: l.level, fields: merged}
}

// Nop is a logger that discards everything; useful as a default when the
// host wires no logger.
type Nop struct{}

// Debug discards the message.
func (Nop) Debug(string, ...Field) {}

// Info discards the message.
func (Nop) Info(string, ...Field) {}

// Warn discards the message.
func (Nop) Warn(string, ...Field) {}

// Error discards the message.
func (Nop) Error(string, ...Field) {}

// With returns the logger unchanged.
func (n Nop) With(...Field) Logger { return n }

// Timer measures an operation's duration for logging.
type Timer struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}

// StartTimer begins timing an operation.
func StartTimer(logger Logger, msg string, fields ...Field) *Timer {
	return &Timer{logger: logger, msg: msg, start: time.Now(), fields: fields}
}

// End logs the operation with its duration at info level.
func (t *Timer) End() {
	t.logger.Info(t.msg, append(t.fields, Duration("duration", time.Since(t.start)))...)
}
