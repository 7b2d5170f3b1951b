// Package eventlog holds the dashboard's bounded, newest-first status log.
package eventlog

import (
	"sync"
	"time"

	"dashboard/internal/models"

	"github.com/google/uuid"
)

// Capacity is the maximum number of retained entries
const Capacity = 50

// Log is an append-to-front ring of status lines. The oldest entry is
// dropped once Capacity is reached. Safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	entries []models.LogEntry
	now     func() time.Time
}

// New creates an empty log
func New() *Log {
	return &Log{now: time.Now}
}

// Append adds a new entry at the front and returns it
func (l *Log) Append(severity models.Severity, message string) models.LogEntry {
	entry := models.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: l.now().UTC(),
		Severity:  severity,
		Message:   message,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	size := len(l.entries) + 1
	if size > Capacity {
		size = Capacity
	}
	next := make([]models.LogEntry, 0, size)
	next = append(next, entry)
	next = append(next, l.entries[:size-1]...)
	l.entries = next

	return entry
}

// Info appends an INFO entry
func (l *Log) Info(message string) models.LogEntry { return l.Append(models.SeverityInfo, message) }

// Warn appends a WARN entry
func (l *Log) Warn(message string) models.LogEntry { return l.Append(models.SeverityWarn, message) }

// Error appends an ERROR entry
func (l *Log) Error(message string) models.LogEntry { return l.Append(models.SeverityError, message) }

// Success appends a SUCCESS entry
func (l *Log) Success(message string) models.LogEntry {
	return l.Append(models.SeveritySuccess, message)
}

// Entries returns a copy of the log, newest first
func (l *Log) Entries() []models.LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.LogEntry(nil), l.entries...)
}

// Len returns the number of retained entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
