// Package logger provides leveled diagnostic logging for inicfg.
//
// Diagnostics go to stderr so they never mix with command output on stdout
// (INI dumps, JSON, YAML). Library packages log through a component logger:
//
//	var log = logger.Named("ini")
//	log.Debugf("include %s opened (depth %d)", path, depth)
//	log.DebugFields("section added", logger.Fields{"name": name})
//
// The CLI flips the shared level once at startup:
//
//	logger.Init(verbose) // verbose=true enables Debug level
//
// Lines are formatted as:
//
//	[DEBUG] 2026-02-03 10:30:45 ini: include extra.ini opened depth=1
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
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

// ParseLevel maps a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	}
	return LevelWarn, false
}

// Fields are structured key/value pairs appended to a log line.
type Fields map[string]interface{}

// sink is the shared destination; every component logger writes through it.
type sink struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
}

var std = &sink{level: LevelWarn, output: os.Stderr}

// Logger writes through the shared sink, tagging lines with a component name.
type Logger struct {
	component string
}

// Named returns a logger whose lines are prefixed with component.
func Named(component string) *Logger {
	return &Logger{component: component}
}

// Init sets the shared level from the --verbose flag.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelWarn)
	}
}

// SetLevel sets the minimum level for all loggers.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// SetOutput redirects all loggers. A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.output = w
}

// GetLevel returns the current level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

// Enabled reports whether a message at level would be written.
func Enabled(level Level) bool {
	return level >= GetLevel()
}

func (s *sink) write(level Level, component, msg string, fields Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if level < s.level {
		return
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(" ")
	if component != "" {
		b.WriteString(component)
		b.WriteString(": ")
	}
	b.WriteString(msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, fields[k])
		}
	}
	b.WriteString("\n")

	_, _ = io.WriteString(s.output, b.String())
}

// Debugf logs a debug message for the component.
func (l *Logger) Debugf(format string, args ...interface{}) {
	std.write(LevelDebug, l.component, fmt.Sprintf(format, args...), nil)
}

// Infof logs an informational message for the component.
func (l *Logger) Infof(format string, args ...interface{}) {
	std.write(LevelInfo, l.component, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning for the component.
func (l *Logger) Warnf(format string, args ...interface{}) {
	std.write(LevelWarn, l.component, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error for the component.
func (l *Logger) Errorf(format string, args ...interface{}) {
	std.write(LevelError, l.component, fmt.Sprintf(format, args...), nil)
}

// DebugFields logs a debug message with structured fields.
func (l *Logger) DebugFields(msg string, fields Fields) {
	std.write(LevelDebug, l.component, msg, fields)
}

// WarnFields logs a warning with structured fields.
func (l *Logger) WarnFields(msg string, fields Fields) {
	std.write(LevelWarn, l.component, msg, fields)
}

// Debug logs an untagged debug message.
func Debug(format string, args ...interface{}) {
	std.write(LevelDebug, "", fmt.Sprintf(format, args...), nil)
}

// Info logs an untagged informational message.
func Info(format string, args ...interface{}) {
	std.write(LevelInfo, "", fmt.Sprintf(format, args...), nil)
}

// Warn logs an untagged warning.
func Warn(format string, args ...interface{}) {
	std.write(LevelWarn, "", fmt.Sprintf(format, args...), nil)
}

// Error logs an untagged error.
func Error(format string, args ...interface{}) {
	std.write(LevelError, "", fmt.Sprintf(format, args...), nil)
}

// DebugFields logs an untagged debug message with structured fields.
func DebugFields(msg string, fields Fields) {
	std.write(LevelDebug, "", msg, fields)
}

// InfoFields logs an untagged informational message with structured fields.
func InfoFields(msg string, fields Fields) {
	std.write(LevelInfo, "", msg, fields)
}

// LogError logs err with a context message. A nil error logs nothing.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	std.write(LevelError, "", fmt.Sprintf("%s: %v", msg, err), nil)
}
