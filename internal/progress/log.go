// Package progress receives server-pushed indexing stage events over a
// WebSocket and keeps a bounded most-recent-first log of them.
package progress

// Event describes one step of server-side indexing for one file.
// The stage vocabulary (received, chunking, embedding, done) belongs to the
// server; the client treats it as opaque.
type Event struct {
	Stage    string `json:"stage"`
	Filename string `json:"filename,omitempty"`
	Chunks   int    `json:"chunks,omitempty"`
}

// LogCapacity is how many events the log retains before evicting the oldest.
const LogCapacity = 50

// Log is a bounded, most-recent-first event log. The oldest event beyond
// capacity is silently evicted. Not safe for concurrent use; the TUI update
// loop is its only writer.
type Log struct {
	events []Event
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{events: make([]Event, 0, LogCapacity)}
}

// Prepend adds an event at the front, evicting the oldest when full.
func (l *Log) Prepend(e Event) {
	if len(l.events) < LogCapacity {
		l.events = append(l.events, Event{})
	}
	copy(l.events[1:], l.events)
	l.events[0] = e
}

// Events returns the logged events, newest first.
func (l *Log) Events() []Event {
	return l.events
}

// Len returns the number of logged events.
func (l *Log) Len() int {
	return len(l.events)
}
