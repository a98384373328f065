package verify

import (
	"sync"

	"github.com/menta2k/card-overlay/internal/log"
	"github.com/menta2k/card-overlay/pkg/payload"
)

// Level is the severity of a diagnostic record
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	default:
		return "info"
	}
}

// Record is one diagnostic emitted by the verifier
type Record struct {
	Level    Level
	Subject  string
	Template string
	Lines    []string
	// Report is nil for the missing-photo warning
	Report *payload.Report
}

// Sink receives diagnostic records
type Sink interface {
	Emit(r Record)
}

// LogSink writes each record line to the standard logger
type LogSink struct{}

// Emit writes r
func (LogSink) Emit(r Record) {
	for _, line := range r.Lines {
		if r.Level == LevelWarn {
			log.Warnf("%s", line)
			continue
		}
		log.Print(line)
	}
}

// MemorySink keeps records in memory. Safe for concurrent use.
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

// Emit appends r
func (m *MemorySink) Emit(r Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
}

// Records returns a copy of the collected records
func (m *MemorySink) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Reset drops all collected records
func (m *MemorySink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}
