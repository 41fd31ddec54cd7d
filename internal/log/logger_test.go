package log

import (
	"testing"
	"time"
)

func TestAppendAndReadAll(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	if err := logger.Append(LogEvent{Event: EventLoginSucceeded, Sub: "mock-user"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := logger.Append(LogEvent{Event: EventUploadQueued, Files: 2}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len: got %d, want 2", len(events))
	}
	if events[0].Event != EventLoginSucceeded || events[0].Sub != "mock-user" {
		t.Errorf("events[0]: got %+v", events[0])
	}
	if events[1].Files != 2 {
		t.Errorf("events[1].Files: got %d, want 2", events[1].Files)
	}
	if events[0].Time.IsZero() {
		t.Error("Time should be auto-set")
	}
	if events[0].Run != logger.RunID() || events[1].Run != logger.RunID() {
		t.Error("events should carry the logger's run ID")
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("len: got %d, want 0", len(events))
	}
}

func TestAppendPreservesExplicitTime(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := logger.Append(LogEvent{Event: EventAskAnswered, Time: ts}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !events[0].Time.Equal(ts) {
		t.Errorf("Time: got %v, want %v", events[0].Time, ts)
	}
}
