// Package usagelog keeps a bounded in-memory record of processing calls.
package usagelog

import (
	"sync"
	"time"
)

// DefaultQueryLimit is applied when a read does not specify a limit.
const DefaultQueryLimit = 50

// Entry is one processed-call record.
type Entry struct {
	Action       string    `json:"action"`
	Timestamp    time.Time `json:"timestamp"`
	InputLength  int       `json:"input_length"`
	OutputLength int       `json:"output_length"`
}

// Log stores the most recent entries in a fixed-size ring, so a long-running
// process cannot grow its diagnostics without bound. Appends reflect
// completion order.
type Log struct {
	mu      sync.Mutex
	size    int
	entries []Entry
	next    int
	full    bool
}

// NewLog returns a log that retains the last capacity entries.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = 1
	}
	return &Log{
		size:    capacity,
		entries: make([]Entry, capacity),
	}
}

// Append stores an entry, evicting the oldest when the ring is full.
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = e
	l.next++
	if l.next >= l.size {
		l.next = 0
		l.full = true
	}
}

// Recent returns the last limit entries in chronological order. A
// non-positive limit falls back to DefaultQueryLimit.
func (l *Log) Recent(limit int) []Entry {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	all := l.snapshot()
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.full {
		return l.size
	}
	return l.next
}

func (l *Log) snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.full {
		out := make([]Entry, l.next)
		copy(out, l.entries[:l.next])
		return out
	}

	out := make([]Entry, l.size)
	copy(out, l.entries[l.next:])
	copy(out[l.size-l.next:], l.entries[:l.next])
	return out
}
