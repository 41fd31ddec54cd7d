package progress

import (
	"fmt"
	"testing"
)

func TestLogPrependNewestFirst(t *testing.T) {
	log := NewLog()
	log.Prepend(Event{Stage: "received", Filename: "a.pdf"})
	log.Prepend(Event{Stage: "chunking", Filename: "a.pdf"})
	log.Prepend(Event{Stage: "done", Filename: "a.pdf", Chunks: 12})

	events := log.Events()
	if len(events) != 3 {
		t.Fatalf("len: got %d, want 3", len(events))
	}
	if events[0].Stage != "done" || events[1].Stage != "chunking" || events[2].Stage != "received" {
		t.Errorf("order: got %v", events)
	}
	if events[0].Chunks != 12 {
		t.Errorf("Chunks: got %d, want 12", events[0].Chunks)
	}
}

func TestLogEvictsOldestBeyondCapacity(t *testing.T) {
	log := NewLog()
	total := LogCapacity * 3
	for i := 0; i < total; i++ {
		log.Prepend(Event{Stage: fmt.Sprintf("stage-%d", i)})
	}

	events := log.Events()
	if len(events) != LogCapacity {
		t.Fatalf("len: got %d, want %d", len(events), LogCapacity)
	}
	// Exactly the last LogCapacity events, newest first.
	for i, e := range events {
		want := fmt.Sprintf("stage-%d", total-1-i)
		if e.Stage != want {
			t.Fatalf("events[%d]: got %q, want %q", i, e.Stage, want)
		}
	}
}

func TestLogEmpty(t *testing.T) {
	log := NewLog()
	if log.Len() != 0 {
		t.Errorf("Len: got %d, want 0", log.Len())
	}
	if len(log.Events()) != 0 {
		t.Errorf("Events: got %v, want empty", log.Events())
	}
}
