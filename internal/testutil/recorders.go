package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
	"github.com/StricklySoft/jaunts-core/pkg/logging"
)

// Logged severities recorded by RecordingLogger.
const (
	LevelWarning  = "warning"
	LevelError    = "error"
	LevelCritical = "critical"
)

// LogEntry is one call made to a RecordingLogger.
type LogEntry struct {
	Level string
	Err   error
}

var _ logging.Logger = (*RecordingLogger)(nil)

// RecordingLogger is a logging.Logger that records every call.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (l *RecordingLogger) record(level string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Err: err})
}

// Warning records a warning call.
func (l *RecordingLogger) Warning(_ context.Context, err error) { l.record(LevelWarning, err) }

// Error records an error call.
func (l *RecordingLogger) Error(_ context.Context, err error) { l.record(LevelError, err) }

// Critical records a critical call.
func (l *RecordingLogger) Critical(_ context.Context, err error) { l.record(LevelCritical, err) }

// Entries returns a copy of the recorded calls in order.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Count returns the number of recorded calls.
func (l *RecordingLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// RequireLoggedOnce halts the test unless logger received exactly one
// call, at level, with err itself.
func RequireLoggedOnce(t testing.TB, logger *RecordingLogger, level string, err error) {
	t.Helper()
	entries := logger.Entries()
	require.Len(t, entries, 1, "expected exactly one log call, got %v", entries)
	require.Equal(t, level, entries[0].Level)
	require.Same(t, err, entries[0].Err, "logged fault differs from returned fault")
}

var _ clock.Clock = (*RecordingClock)(nil)

// RecordingClock is a fixed clock that counts Now calls.
type RecordingClock struct {
	mu    sync.Mutex
	now   time.Time
	calls int
}

// NewRecordingClock returns a clock fixed at now.
func NewRecordingClock(now time.Time) *RecordingClock {
	return &RecordingClock{now: now}
}

// Now returns the fixed time and counts the call.
func (c *RecordingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.now
}

// Calls returns how many times Now was called.
func (c *RecordingClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
