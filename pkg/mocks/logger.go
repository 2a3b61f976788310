package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/textplate/pkg/ports"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

// Logger is a ports.Logger that records formatted messages.
type Logger struct {
	component string
	shared    *logStore
}

type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogger creates a recording logger.
func NewLogger() *Logger {
	return &Logger{shared: &logStore{}}
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record(ports.LevelError, msg, args) }

// WithComponent returns a logger sharing this logger's records.
func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{component: component, shared: m.shared}
}

func (m *Logger) record(level ports.LogLevel, msg string, args []interface{}) {
	m.shared.mu.Lock()
	defer m.shared.mu.Unlock()
	m.shared.entries = append(m.shared.entries, LogEntry{
		Level:     level,
		Component: m.component,
		Message:   fmt.Sprintf(msg, args...),
	})
}

// Entries returns all records at the given level.
func (m *Logger) Entries(level ports.LogLevel) []LogEntry {
	m.shared.mu.Lock()
	defer m.shared.mu.Unlock()
	var out []LogEntry
	for _, e := range m.shared.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether any record at level contains substr.
func (m *Logger) Contains(level ports.LogLevel, substr string) bool {
	for _, e := range m.Entries(level) {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

var _ ports.Logger = (*Logger)(nil)
