package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/tui"
)

// AskRequestMsg is sent when the user submits a question. Never sent with
// an empty trimmed question.
type AskRequestMsg struct {
	Question string
}

// ChatModel is the view model for the chat screen. Each ask replaces the
// previous answer and citations wholesale.
type ChatModel struct {
	textarea  textarea.Model
	spinner   spinner.Model
	sub       string
	answer    string
	citations []api.Citation
	loading   bool
	width     int
	height    int
}

// NewChatModel creates a ChatModel.
func NewChatModel(width, height int) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "e.g., What is my name in my CV?"
	ta.CharLimit = 5000
	ta.SetWidth(width - 8)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	// Enter submits; Shift+Enter (or Ctrl+J) inserts a newline.
	keyMap := ta.KeyMap
	keyMap.InsertNewline = key.NewBinding(
		key.WithKeys("shift+enter", "ctrl+j"),
		key.WithHelp("shift+enter", "new line"),
	)
	ta.KeyMap = keyMap

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))

	return ChatModel{
		textarea: ta,
		spinner:  sp,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the chat view.
func (m ChatModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the chat view.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keyStr := msg.String()

		if keyStr == tui.KeyEnter {
			question := strings.TrimSpace(m.textarea.Value())
			// Asking is disabled while the trimmed question is empty.
			if question == "" || m.loading {
				return m, nil
			}

			m.answer = ""
			m.citations = nil
			m.loading = true
			return m, tea.Batch(
				m.spinner.Tick,
				func() tea.Msg { return AskRequestMsg{Question: question} },
			)
		}

		if keyStr == tui.KeyEsc {
			// Back to the upload view, the default route.
			return m, func() tea.Msg {
				return tui.NavigateMsg{State: tui.StateUpload}
			}
		}

		if keyStr == tui.KeyShiftEnter || keyStr == tui.KeyCtrlJ {
			m.textarea.InsertString("\n")
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width - 8)
		return m, nil

	case tui.IdentityMsg:
		m.sub = msg.Sub
		return m, nil

	case tui.AnswerMsg:
		m.loading = false
		if msg.Result != nil {
			m.answer = msg.Result.Answer
			m.citations = msg.Result.Citations
		}
		return m, nil

	case tui.AskErrMsg:
		m.loading = false
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the chat view.
func (m ChatModel) View() string {
	var b strings.Builder

	signedInAs := m.sub
	if signedInAs == "" {
		signedInAs = "unknown"
	}
	b.WriteString(tui.TitleStyle.Render("Chat"))
	b.WriteString("   " + tui.DimStyle.Render("Signed in as: "+signedInAs))
	b.WriteString("\n\n")

	b.WriteString("Ask a question about your docs:\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	if m.loading {
		b.WriteString("\n" + m.spinner.View() + " Thinking...\n")
	}

	if m.answer != "" {
		b.WriteString("\n" + tui.BoxStyle.Render(m.renderAnswer()))
	}

	return b.String()
}

// renderAnswer renders the answer text verbatim plus its citation lines.
func (m ChatModel) renderAnswer() string {
	var b strings.Builder
	b.WriteString(m.answer)

	if len(m.citations) > 0 {
		b.WriteString("\n\n" + tui.TitleStyle.Render("Citations") + "\n")
		for _, c := range m.citations {
			b.WriteString(tui.FormatCitation(c) + "\n")
		}
	}
	return b.String()
}
