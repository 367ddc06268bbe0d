package game

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// EventBufferSize bounds the in-memory diagnostics ring.
const EventBufferSize = 512

// EventLog is a bounded ring buffer of diagnostics events with optional
// JSONL persistence. The simulation emits into it from the single tick
// goroutine; readers (API handlers) take a snapshot under the lock.
type EventLog struct {
	mu      sync.Mutex
	buffer  [EventBufferSize]Event
	pos     int
	length  int
	seq     uint64
	dropped uint64

	file *os.File
	enc  *json.Encoder
}

// NewEventLog returns an in-memory-only log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Persist flushes the buffered events to a JSONL file and keeps
// appending every event emitted afterwards.
func (el *EventLog) Persist(path string) error {
	el.mu.Lock()
	defer el.mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open event log")
	}
	el.file = f
	el.enc = json.NewEncoder(f)

	start := el.pos - el.length
	if start < 0 {
		start += EventBufferSize
	}
	for i := 0; i < el.length; i++ {
		ev := el.buffer[(start+i)%EventBufferSize]
		if err := el.enc.Encode(&ev); err != nil {
			return errors.Wrap(err, "flush event log")
		}
	}
	return nil
}

// Close flushes and stops persistence.
func (el *EventLog) Close() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.file == nil {
		return nil
	}
	err := el.file.Close()
	el.file = nil
	el.enc = nil
	return errors.Wrap(err, "close event log")
}

// Emit appends an event, overwriting the oldest entry when full.
func (el *EventLog) Emit(event Event) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.seq++
	event.Sequence = el.seq

	if el.length == EventBufferSize {
		el.dropped++
	}
	el.buffer[el.pos] = event
	el.pos = (el.pos + 1) % EventBufferSize
	if el.length < EventBufferSize {
		el.length++
	}

	if el.enc != nil {
		// Best effort; a failed write must not stall the tick.
		_ = el.enc.Encode(&event)
	}
}

// EmitSimple builds and appends an event in one call.
func (el *EventLog) EmitSimple(t EventType, tick uint64, fighterID string, payload interface{}) {
	el.Emit(NewEvent(t, tick, fighterID, payload))
}

// Recent returns up to n most recent events, oldest first.
func (el *EventLog) Recent(n int) []Event {
	el.mu.Lock()
	defer el.mu.Unlock()

	if n > el.length {
		n = el.length
	}
	out := make([]Event, 0, n)
	start := el.pos - n
	if start < 0 {
		start += EventBufferSize
	}
	for i := 0; i < n; i++ {
		out = append(out, el.buffer[(start+i)%EventBufferSize])
	}
	return out
}

// Stats reports counters for the observability endpoint.
func (el *EventLog) Stats() map[string]interface{} {
	el.mu.Lock()
	defer el.mu.Unlock()
	return map[string]interface{}{
		"total":     el.seq,
		"buffered":  el.length,
		"dropped":   el.dropped,
		"persisted": el.file != nil,
	}
}
