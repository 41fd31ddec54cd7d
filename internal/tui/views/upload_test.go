package views

import (
	"strings"
	"testing"
	"time"

	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/progress"
	"github.com/docuchat-dev/docuchat/internal/tui"
)

func TestUploadPercentLifecycle(t *testing.T) {
	m := NewUploadModel(100, 40)

	if m.Percent() != 0 {
		t.Fatalf("initial percent: got %d, want 0", m.Percent())
	}

	m, _ = m.Update(tui.UploadDoneMsg{Ack: &api.UploadAck{Status: "queued", Count: 1}})
	if m.Percent() != 100 {
		t.Errorf("after success: got %d, want 100", m.Percent())
	}

	m, _ = m.Update(tui.PercentResetMsg{})
	if m.Percent() != 0 {
		t.Errorf("after reset: got %d, want 0", m.Percent())
	}
}

func TestUploadFailureRollsGaugeBack(t *testing.T) {
	m := NewUploadModel(100, 40)
	m.percent = 10

	m, _ = m.Update(tui.UploadErrMsg{Err: &api.UploadError{Status: 400, Detail: "nope"}})
	if m.Percent() != 0 {
		t.Errorf("after failure: got %d, want 0", m.Percent())
	}
}

func TestUploadEmptyStates(t *testing.T) {
	m := NewUploadModel(100, 40)
	view := m.View()

	if !strings.Contains(view, "No documents yet") {
		t.Error("empty document list should render \"No documents yet\"")
	}
	if !strings.Contains(view, "No progress yet. Upload something!") {
		t.Error("empty progress log should render its empty-state text")
	}
}

func TestUploadRendersDocumentsInServerOrder(t *testing.T) {
	m := NewUploadModel(100, 40)
	m, _ = m.Update(tui.DocumentsMsg{Docs: []api.Document{
		{Filename: "z.pdf", CreatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
		{Filename: "a.txt", CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
	}})

	view := m.View()
	zi := strings.Index(view, "z.pdf")
	ai := strings.Index(view, "a.txt")
	if zi < 0 || ai < 0 {
		t.Fatalf("documents missing from view")
	}
	if zi > ai {
		t.Error("documents re-sorted; server order must be preserved")
	}
	if strings.Contains(view, "No documents yet") {
		t.Error("non-empty list should not render the empty state")
	}
}

func TestUploadProgressEventsNewestFirst(t *testing.T) {
	m := NewUploadModel(100, 40)
	m, _ = m.Update(tui.ChannelEventMsg{Event: progress.Event{Stage: "received", Filename: "a.pdf"}})
	m, _ = m.Update(tui.ChannelEventMsg{Event: progress.Event{Stage: "done", Filename: "a.pdf", Chunks: 3}})

	view := m.View()
	di := strings.Index(view, "done")
	ri := strings.Index(view, "received")
	if di < 0 || ri < 0 {
		t.Fatalf("events missing from view")
	}
	if di > ri {
		t.Error("events should render newest first")
	}
}

func TestUploadChannelStateLabel(t *testing.T) {
	m := NewUploadModel(100, 40)
	m, _ = m.Update(tui.ChannelOpenedMsg{})
	if !strings.Contains(m.View(), "(live)") {
		t.Error("open channel should render as live")
	}

	m, _ = m.Update(tui.ChannelClosedMsg{})
	if !strings.Contains(m.View(), "(closed)") {
		t.Error("closed channel should render as closed")
	}
}
