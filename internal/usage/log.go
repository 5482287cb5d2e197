// Package usage records prompt construction events in a bounded,
// insertion-ordered log.
package usage

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the log capacity when the config does not set one.
const DefaultCapacity = 256

// Record is an immutable snapshot of one prompt construction. Records are
// never mutated after creation and leave the log only under capacity
// pressure.
type Record struct {
	ID             string
	Template       string
	Tokens         int
	Chars          int
	Optimized      bool
	OriginalTokens int      // pre-optimization count; zero when Optimized is false
	Applied        []string // strategy names in the order they ran
	Latency        time.Duration
	Model          string
	CreatedAt      time.Time
}

// NewRecord creates a Record with a fresh identifier and timestamp.
func NewRecord(template string) Record {
	return Record{
		ID:        uuid.NewString(),
		Template:  template,
		CreatedAt: time.Now(),
	}
}

// Log is a bounded-capacity, insertion-ordered record log. On overflow the
// oldest record is evicted first. The log does no locking of its own;
// concurrent hosts must serialize Record/List/Clear.
type Log struct {
	capacity int
	records  []Record
	head     int // index of the oldest record
	size     int
}

// NewLog creates a Log with the given capacity. A non-positive capacity
// falls back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		records:  make([]Record, capacity),
	}
}

// Record appends an entry, evicting the oldest entry when at capacity.
func (l *Log) Record(entry Record) {
	tail := (l.head + l.size) % l.capacity
	l.records[tail] = entry
	if l.size < l.capacity {
		l.size++
		return
	}
	l.head = (l.head + 1) % l.capacity
}

// List returns all records in insertion order, oldest first.
func (l *Log) List() []Record {
	out := make([]Record, 0, l.size)
	for i := 0; i < l.size; i++ {
		out = append(out, l.records[(l.head+i)%l.capacity])
	}
	return out
}

// Len returns the number of records currently held.
func (l *Log) Len() int {
	return l.size
}

// Capacity returns the configured capacity.
func (l *Log) Capacity() int {
	return l.capacity
}

// Clear empties the log.
func (l *Log) Clear() {
	l.head = 0
	l.size = 0
}

// Stats summarizes the log for reporting.
type Stats struct {
	Total          int
	OptimizedCount int
	AvgTokens      float64
	ByStrategy     map[string]int
}

// Summarize aggregates the current records.
func (l *Log) Summarize() Stats {
	stats := Stats{ByStrategy: make(map[string]int)}
	tokenSum := 0
	for _, rec := range l.List() {
		stats.Total++
		tokenSum += rec.Tokens
		if rec.Optimized {
			stats.OptimizedCount++
		}
		for _, name := range rec.Applied {
			stats.ByStrategy[name]++
		}
	}
	if stats.Total > 0 {
		stats.AvgTokens = float64(tokenSum) / float64(stats.Total)
	}
	return stats
}
