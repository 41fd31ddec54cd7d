package views

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/progress"
	"github.com/docuchat-dev/docuchat/internal/tui"
)

// UploadRequestMsg is sent when the user picked files to upload. The picker
// only ever yields non-empty selections.
type UploadRequestMsg struct {
	Paths []string
}

// maxVisibleEvents caps how many progress lines are rendered at once; the
// log behind it still holds progress.LogCapacity events.
const maxVisibleEvents = 8

// UploadModel is the view model for the upload screen. It renders two
// independent signals side by side: the cosmetic client-side percent gauge
// and the server-pushed indexing events. Neither implies anything about the
// other.
type UploadModel struct {
	picker filepicker.Model

	sub     string
	percent int
	docs    []api.Document
	events  *progress.Log
	channel progress.State

	width  int
	height int
}

// NewUploadModel creates an UploadModel rooted at the user's home
// directory.
func NewUploadModel(width, height int) UploadModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf", ".md", ".txt"}
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}
	fp.Height = 6

	return UploadModel{
		picker:  fp,
		events:  progress.NewLog(),
		channel: progress.Disconnected,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command for the upload view.
func (m UploadModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Percent returns the cosmetic upload gauge value.
func (m UploadModel) Percent() int {
	return m.percent
}

// Update handles messages for the upload view.
func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.IdentityMsg:
		m.sub = msg.Sub
		return m, nil

	case tui.DocumentsMsg:
		// Wholesale replacement, server order.
		m.docs = msg.Docs
		return m, nil

	case tui.ChannelOpenedMsg:
		m.channel = progress.Open
		return m, nil

	case tui.ChannelErrMsg, tui.ChannelClosedMsg:
		m.channel = progress.Closed
		return m, nil

	case tui.ChannelEventMsg:
		m.events.Prepend(msg.Event)
		return m, nil

	case tui.UploadDoneMsg:
		m.percent = 100
		return m, nil

	case tui.UploadErrMsg:
		// Roll the gauge back to its pre-submission value.
		m.percent = 0
		return m, nil

	case tui.PercentResetMsg:
		m.percent = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		// Optimistic, cosmetic start value. Carries no transfer semantics.
		m.percent = 10
		return m, tea.Batch(cmd, func() tea.Msg {
			return UploadRequestMsg{Paths: []string{path}}
		})
	}

	return m, cmd
}

// View renders the upload view.
func (m UploadModel) View() string {
	var b strings.Builder

	signedInAs := m.sub
	if signedInAs == "" {
		signedInAs = "unknown"
	}
	b.WriteString(tui.TitleStyle.Render("Uploads"))
	b.WriteString("   " + tui.DimStyle.Render("Signed in as: "+signedInAs))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Pick a PDF/MD/TXT to index (max %d files per upload):\n", api.MaxUploadFiles))
	b.WriteString(m.picker.View())
	b.WriteString("\n")

	if m.percent > 0 {
		b.WriteString(renderGauge(m.percent) + "\n\n")
	}

	stateStyle := tui.DimStyle
	if m.channel == progress.Closed {
		// The channel never reconnects; make the dead feed stand out.
		stateStyle = tui.WarningStyle
	}
	b.WriteString(tui.TitleStyle.Render("Indexing progress") + " " + stateStyle.Render("("+m.channel.String()+")"))
	b.WriteString("\n")
	b.WriteString(m.renderEvents())
	b.WriteString("\n")

	b.WriteString(tui.TitleStyle.Render("Your Documents"))
	b.WriteString("\n")
	b.WriteString(m.renderDocuments())

	return b.String()
}

// renderEvents renders the newest progress events, most recent first.
func (m UploadModel) renderEvents() string {
	events := m.events.Events()
	if len(events) == 0 {
		return tui.DimStyle.Render("No progress yet. Upload something!") + "\n"
	}

	var b strings.Builder
	shown := len(events)
	if shown > maxVisibleEvents {
		shown = maxVisibleEvents
	}
	for _, e := range events[:shown] {
		b.WriteString("  " + tui.StageStyle.Render(e.Stage))
		if detail := tui.FormatEvent(e); detail != "" {
			b.WriteString("  " + tui.DimStyle.Render(detail))
		}
		b.WriteString("\n")
	}
	if rest := len(events) - shown; rest > 0 {
		b.WriteString(tui.DimStyle.Render(fmt.Sprintf("  … and %d more", rest)) + "\n")
	}
	return b.String()
}

// renderDocuments renders the document list in server order.
func (m UploadModel) renderDocuments() string {
	if len(m.docs) == 0 {
		return tui.DimStyle.Render("No documents yet") + "\n"
	}

	var b strings.Builder
	for _, d := range m.docs {
		line := "  " + d.Filename
		if !d.CreatedAt.IsZero() {
			line += "  " + tui.DimStyle.Render(d.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// renderGauge renders the cosmetic upload percent bar.
func renderGauge(percent int) string {
	const width = 30
	filled := percent * width / 100
	bar := tui.GaugeFilledStyle.Render(strings.Repeat("█", filled)) +
		tui.DimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d%%", bar, percent)
}
