// Package logbuf keeps recent structured log entries in memory so the
// terminal driver can show them while the screen is owned by tcell.
package logbuf

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Entry is a single decoded log entry.
type Entry = map[string]any

// DefaultCapacity is the capacity of Global.
const DefaultCapacity = 1000

// Global is the buffer the command line wires into the global logger.
var Global = New(DefaultCapacity)

// Buffer is an in-memory log writer and reader.
// Once full it drops its oldest entries.
type Buffer struct {
	mtx      sync.Mutex
	entries  []Entry
	capacity int
}

// New returns a buffer holding at most capacity entries; a capacity below one
// means one.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{capacity: capacity}
}

// Write decodes one JSON log line and appends it.
func (b *Buffer) Write(p []byte) (int, error) {
	entry := Entry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.entries = append(b.entries, entry)
	if over := len(b.entries) - b.capacity; over > 0 {
		b.entries = append([]Entry(nil), b.entries[over:]...)
	}
	return len(p), nil
}

// Get returns a copy of the buffered entries, oldest first.
func (b *Buffer) Get() []Entry {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return append([]Entry(nil), b.entries...)
}

// Tail returns the newest n entries, oldest first.
func (b *Buffer) Tail(n int) []Entry {
	all := b.Get()
	if n < len(all) {
		return all[len(all)-n:]
	}
	return all
}

// Clear drops all entries.
func (b *Buffer) Clear() {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.entries = nil
}

// Reader allows reading access to a log.
type Reader interface {
	Get() []Entry
}
