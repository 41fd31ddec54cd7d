// Package views provides TUI view components for the DocuChat client.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docuchat-dev/docuchat/internal/tui"
)

// SubmitTokenMsg is sent when the user submits a bearer token.
type SubmitTokenMsg struct {
	Token string
}

// LoginModel is the view model for the login screen. Mock OIDC: any pasted
// token is stored and then validated against /me.
type LoginModel struct {
	textInput textinput.Model
	spinner   spinner.Model
	loading   bool
	errText   string
	width     int
	height    int
}

// NewLoginModel creates a LoginModel, prefilled with the stored token when
// one exists.
func NewLoginModel(storedToken string, width, height int) LoginModel {
	ti := textinput.New()
	ti.Placeholder = "Paste Bearer token (mock allowed)"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 2000
	ti.Width = 48
	ti.SetValue(storedToken)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))

	return LoginModel{
		textInput: ti,
		spinner:   sp,
		width:     width,
		height:    height,
	}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter && !m.loading {
			token := strings.TrimSpace(m.textInput.Value())
			if token == "" {
				return m, nil
			}
			m.loading = true
			m.errText = ""
			return m, tea.Batch(
				m.spinner.Tick,
				func() tea.Msg { return SubmitTokenMsg{Token: token} },
			)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.LoginFailedMsg:
		m.loading = false
		m.errText = "Invalid token or server unreachable"
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
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Login"))
	b.WriteString("\n\n")
	b.WriteString("Mock OIDC is enabled: paste any token (e.g. testtoken).\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	if m.loading {
		b.WriteString("\n" + m.spinner.View() + " Validating token...\n")
	}
	if m.errText != "" {
		b.WriteString("\n" + tui.ErrorStyle.Render(m.errText) + "\n")
	}

	b.WriteString("\n" + tui.DimStyle.Render("A real Keycloak login replaces this screen later."))

	return tui.BoxStyle.Render(b.String())
}
