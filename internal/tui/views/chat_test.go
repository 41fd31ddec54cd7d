package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/tui"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collectMsgs runs a command (possibly a batch) and gathers the messages it
// produces, ignoring nil commands.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func TestChatEmptyQuestionNeverAsks(t *testing.T) {
	m := NewChatModel(100, 40)
	m.textarea.SetValue("   \n  ")

	m, cmd := m.Update(keyMsg("enter"))
	for _, msg := range collectMsgs(cmd) {
		if _, ok := msg.(AskRequestMsg); ok {
			t.Fatal("whitespace-only question must not produce an AskRequestMsg")
		}
	}
	if m.loading {
		t.Error("view must not enter loading state for an empty question")
	}
}

func TestChatSubmitTrimsQuestion(t *testing.T) {
	m := NewChatModel(100, 40)
	m.textarea.SetValue("  What is my name in my CV?  ")

	m, cmd := m.Update(keyMsg("enter"))
	if !m.loading {
		t.Error("view should enter loading state")
	}

	var got *AskRequestMsg
	for _, msg := range collectMsgs(cmd) {
		if ask, ok := msg.(AskRequestMsg); ok {
			got = &ask
		}
	}
	if got == nil {
		t.Fatal("expected an AskRequestMsg")
	}
	if got.Question != "What is my name in my CV?" {
		t.Errorf("question: got %q", got.Question)
	}
}

func TestChatAnswerReplacedWholesale(t *testing.T) {
	m := NewChatModel(100, 40)
	score := 0.87
	m, _ = m.Update(tui.AnswerMsg{Result: &api.AnswerResult{
		Answer:    "Jane Doe",
		Citations: []api.Citation{{Index: 1, Filename: "cv.pdf", Score: &score}},
	}})

	view := m.View()
	if !strings.Contains(view, "Jane Doe") {
		t.Error("answer text should render verbatim")
	}
	if !strings.Contains(view, "[Doc 1] cv.pdf (score 0.870)") {
		t.Error("citation line should render in the documented format")
	}

	// The next ask supersedes everything.
	m, _ = m.Update(tui.AnswerMsg{Result: &api.AnswerResult{Answer: "Someone Else"}})
	view = m.View()
	if strings.Contains(view, "Jane Doe") || strings.Contains(view, "cv.pdf") {
		t.Error("previous answer and citations must be replaced wholesale")
	}
}

func TestChatEscapeNavigatesBackToUpload(t *testing.T) {
	m := NewChatModel(100, 40)
	m.textarea.SetValue("half-typed question")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	var nav *tui.NavigateMsg
	for _, msg := range collectMsgs(cmd) {
		if n, ok := msg.(tui.NavigateMsg); ok {
			nav = &n
		}
	}
	if nav == nil {
		t.Fatal("esc should produce a NavigateMsg")
	}
	if nav.State != tui.StateUpload {
		t.Errorf("navigate target: got %v, want upload", nav.State)
	}
}

func TestChatAskErrorStopsLoading(t *testing.T) {
	m := NewChatModel(100, 40)
	m.loading = true
	m, _ = m.Update(tui.AskErrMsg{Err: &api.AskError{Status: 502}})
	if m.loading {
		t.Error("loading should stop on error")
	}
}
