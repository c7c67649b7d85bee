package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// Entry is one captured log record.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogCapture is a slog.Handler that records every log line so tests can
// assert on what a component logged. Safe for concurrent use.
type LogCapture struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTestLogger returns a logger whose output is captured rather than
// printed, together with the capture for assertions.
func NewTestLogger(t *testing.T) (*slog.Logger, *LogCapture) {
	t.Helper()
	c := &LogCapture{}
	return slog.New(c), c
}

func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	c.mu.Lock()
	c.entries = append(c.entries, Entry{Level: r.Level, Message: r.Message, Attrs: attrs})
	c.mu.Unlock()
	return nil
}

func (c *LogCapture) Enabled(context.Context, slog.Level) bool { return true }
func (c *LogCapture) WithAttrs([]slog.Attr) slog.Handler       { return c }
func (c *LogCapture) WithGroup(string) slog.Handler            { return c }

// Entries returns a copy of everything logged so far.
func (c *LogCapture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// HasMessage reports whether any captured line's message contains sub.
func (c *LogCapture) HasMessage(sub string) bool {
	for _, e := range c.Entries() {
		if strings.Contains(e.Message, sub) {
			return true
		}
	}
	return false
}

// HasAttr reports whether any captured line carries the given attribute.
func (c *LogCapture) HasAttr(key string, value any) bool {
	for _, e := range c.Entries() {
		if v, ok := e.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}
