// Package app provides the main TUI application that wires all views together.
package app

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/config"
	"github.com/docuchat-dev/docuchat/internal/log"
	"github.com/docuchat-dev/docuchat/internal/progress"
	"github.com/docuchat-dev/docuchat/internal/session"
	"github.com/docuchat-dev/docuchat/internal/tui"
	"github.com/docuchat-dev/docuchat/internal/tui/commands"
	"github.com/docuchat-dev/docuchat/internal/tui/views"
)

// Post-upload timing. The refresh delay lets the server's async indexing
// begin registering the document; the reset delay is purely visual.
const (
	refreshDelay = 600 * time.Millisecond
	resetDelay   = 800 * time.Millisecond
	statusTTL    = 3 * time.Second
)

// App is the main TUI application: three views routed behind the session
// guard, one transient status line, and at most one live progress channel.
type App struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	logger *log.Logger

	state  tui.ViewState
	width  int
	height int

	// gen counts view mounts. Channel messages carry the generation of the
	// mount that dialed them; anything stamped with an older generation is
	// a leftover from a torn-down mount and is released, not adopted.
	gen int

	status    string
	statusErr bool

	// channel is the progress subscription owned by the upload view's
	// current mount; nil everywhere else.
	channel *progress.Channel

	loginView  views.LoginModel
	uploadView views.UploadModel
	chatView   views.ChatModel
}

// New creates the App. The initial view follows the session guard: a
// stored credential lands on Upload (the default route), anything else on
// Login.
func New(cfg *config.Config, store *session.Store, client *api.Client, logger *log.Logger) *App {
	a := &App{
		cfg:    cfg,
		store:  store,
		client: client,
		logger: logger,
		width:  80,
		height: 24,
	}

	if store.Authenticated() {
		a.state = tui.StateUpload
	} else {
		a.state = tui.StateLogin
	}
	return a
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return a.enter(a.state)
}

// enter mounts the view for the given state and returns its startup
// commands. Guarded views fetch identity fresh on every mount.
func (a *App) enter(state tui.ViewState) tea.Cmd {
	// Leaving the upload view must deterministically release its channel;
	// a remount always dials a fresh one. Bumping the generation
	// invalidates every channel message still in flight from the old
	// mount's dial and event pump.
	a.closeChannel()
	a.gen++

	switch state {
	case tui.StateUpload:
		a.uploadView = views.NewUploadModel(a.width, a.height)
		return tea.Batch(
			a.uploadView.Init(),
			commands.LoadIdentityCmd(a.client),
			commands.LoadDocumentsCmd(a.client),
			commands.DialProgressCmd(a.cfg.WSURL, a.cfg.MockSub, a.gen),
		)

	case tui.StateChat:
		a.chatView = views.NewChatModel(a.width, a.height)
		return tea.Batch(
			a.chatView.Init(),
			commands.LoadIdentityCmd(a.client),
		)

	default:
		a.loginView = views.NewLoginModel(a.store.Token(), a.width, a.height)
		return a.loginView.Init()
	}
}

// navigate applies the session guard and mounts the target view.
// Guarded targets without a stored credential reroute to Login; the guard
// checks presence only, validity surfaces on the view's first API call.
func (a *App) navigate(state tui.ViewState) tea.Cmd {
	if state.Guarded() && !a.store.Authenticated() {
		state = tui.StateLogin
	}
	a.state = state
	return a.enter(state)
}

func (a *App) closeChannel() {
	if a.channel != nil {
		_ = a.channel.Close()
		a.channel = nil
		_ = a.logger.Append(log.LogEvent{Event: log.EventChannelClosed})
	}
}

// setStatus installs the transient status line and schedules its fade.
func (a *App) setStatus(text string, isErr bool) tea.Cmd {
	a.status = text
	a.statusErr = isErr
	return commands.ClearStatusCmd(statusTTL)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forward(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			a.closeChannel()
			return a, tea.Quit
		case tui.KeyTab:
			// Tab cycles the two guarded views.
			if a.state == tui.StateUpload {
				return a, a.navigate(tui.StateChat)
			}
			if a.state == tui.StateChat {
				return a, a.navigate(tui.StateUpload)
			}
		}
		return a, a.forward(msg)

	case tui.NavigateMsg:
		return a, a.navigate(msg.State)

	case tui.StatusMsg:
		return a, a.setStatus(msg.Text, msg.IsError)

	case tui.StatusClearMsg:
		a.status = ""
		a.statusErr = false
		return a, nil

	// ------------------------------------------------------------------
	// Login flow
	// ------------------------------------------------------------------
	case views.SubmitTokenMsg:
		return a, commands.LoginCmd(a.client, a.store, msg.Token)

	case tui.LoginOKMsg:
		_ = a.logger.Append(log.LogEvent{Event: log.EventLoginSucceeded, Sub: msg.Sub})
		return a, tea.Batch(a.setStatus("Logged in", false), a.navigate(tui.StateUpload))

	case tui.LoginFailedMsg:
		_ = a.logger.Append(log.LogEvent{Event: log.EventLoginFailed, Error: msg.Err.Error()})
		return a, a.forward(msg)

	// ------------------------------------------------------------------
	// Identity
	// ------------------------------------------------------------------
	case tui.IdentityErrMsg:
		// A failed identity check on a guarded view forces navigation to
		// Login without rendering protected content.
		var authErr *api.AuthError
		if a.state.Guarded() && errors.As(msg.Err, &authErr) {
			return a, tea.Batch(a.setStatus("Auth required", true), a.navigate(tui.StateLogin))
		}
		return a, a.setStatus("Failed to load identity", true)

	case tui.IdentityMsg:
		return a, a.forward(msg)

	// ------------------------------------------------------------------
	// Documents
	// ------------------------------------------------------------------
	case tui.DocumentsMsg:
		// Discard results that resolve after the upload view was left.
		if a.state != tui.StateUpload {
			return a, nil
		}
		return a, a.forward(msg)

	case tui.DocumentsErrMsg:
		if a.state != tui.StateUpload {
			return a, nil
		}
		return a, a.setStatus("Failed to load documents", true)

	// ------------------------------------------------------------------
	// Upload orchestration
	// ------------------------------------------------------------------
	case views.UploadRequestMsg:
		return a, commands.UploadCmd(a.client, msg.Paths)

	case tui.UploadDoneMsg:
		if a.state != tui.StateUpload {
			return a, nil
		}
		files := 0
		if msg.Ack != nil {
			files = msg.Ack.Count
		}
		_ = a.logger.Append(log.LogEvent{Event: log.EventUploadQueued, Files: files})
		// Exactly one deferred refresh, one gauge reset.
		return a, tea.Batch(
			a.forward(msg),
			a.setStatus("File queued for indexing", false),
			commands.RefreshDocsCmd(refreshDelay),
			commands.ResetPercentCmd(resetDelay),
		)

	case tui.UploadErrMsg:
		_ = a.logger.Append(log.LogEvent{Event: log.EventUploadFailed, Error: msg.Err.Error()})
		if a.state != tui.StateUpload {
			return a, nil
		}
		return a, tea.Batch(a.forward(msg), a.setStatus("Upload failed: "+msg.Err.Error(), true))

	case tui.RefreshDocsMsg:
		if a.state != tui.StateUpload {
			return a, nil
		}
		return a, commands.LoadDocumentsCmd(a.client)

	case tui.PercentResetMsg:
		return a, a.forward(msg)

	// ------------------------------------------------------------------
	// Progress channel plumbing
	// ------------------------------------------------------------------
	case tui.ChannelOpenedMsg:
		if msg.Gen != a.gen || a.state != tui.StateUpload {
			// Resolved after its mount was torn down: release it instead
			// of leaking.
			_ = msg.Channel.Close()
			return a, nil
		}
		a.channel = msg.Channel
		_ = a.logger.Append(log.LogEvent{Event: log.EventChannelOpened, Sub: a.cfg.MockSub})
		return a, tea.Batch(a.forward(msg), commands.WaitForEventCmd(a.channel, a.gen))

	case tui.ChannelEventMsg:
		if msg.Gen != a.gen || a.state != tui.StateUpload || a.channel == nil {
			return a, nil
		}
		return a, tea.Batch(a.forward(msg), commands.WaitForEventCmd(a.channel, a.gen))

	case tui.ChannelClosedMsg:
		// A close from an old mount's pump must not detach the live channel.
		if msg.Gen != a.gen {
			return a, nil
		}
		a.channel = nil
		return a, a.forward(msg)

	case tui.ChannelErrMsg:
		if msg.Gen != a.gen || a.state != tui.StateUpload {
			return a, nil
		}
		return a, a.forward(msg)

	// ------------------------------------------------------------------
	// Ask flow
	// ------------------------------------------------------------------
	case views.AskRequestMsg:
		return a, commands.AskCmd(a.client, msg.Question, api.DefaultTopK)

	case tui.AnswerMsg:
		if a.state != tui.StateChat {
			return a, nil
		}
		citations := 0
		if msg.Result != nil {
			citations = len(msg.Result.Citations)
		}
		_ = a.logger.Append(log.LogEvent{Event: log.EventAskAnswered, TopK: api.DefaultTopK, Citations: citations})
		return a, a.forward(msg)

	case tui.AskErrMsg:
		_ = a.logger.Append(log.LogEvent{Event: log.EventAskFailed, Error: msg.Err.Error()})
		if a.state != tui.StateChat {
			return a, nil
		}
		return a, tea.Batch(a.forward(msg), a.setStatus("Ask failed", true))
	}

	return a, a.forward(msg)
}

// forward routes a message to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state {
	case tui.StateUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case tui.StateChat:
		a.chatView, cmd = a.chatView.Update(msg)
	default:
		a.loginView, cmd = a.loginView.Update(msg)
	}
	return cmd
}

// View renders the navigation header, status line, active view and footer.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderNav())
	b.WriteString("\n")

	if a.status != "" {
		style := tui.SuccessStyle
		if a.statusErr {
			style = tui.ErrorStyle
		}
		b.WriteString(style.Render(a.status))
	}
	b.WriteString("\n\n")

	switch a.state {
	case tui.StateUpload:
		b.WriteString(a.uploadView.View())
	case tui.StateChat:
		b.WriteString(a.chatView.View())
	default:
		b.WriteString(a.loginView.View())
	}

	b.WriteString("\n" + tui.DefaultKeyMap.HelpLine())
	return b.String()
}

// renderNav renders the Upload | Chat header with the brand on the right.
func (a *App) renderNav() string {
	upload := tui.InactiveNavStyle.Render("Upload")
	chat := tui.InactiveNavStyle.Render("Chat")
	switch a.state {
	case tui.StateUpload:
		upload = tui.ActiveNavStyle.Render("Upload")
	case tui.StateChat:
		chat = tui.ActiveNavStyle.Render("Chat")
	}
	brand := tui.DimStyle.Render("DocuChat")
	return lipgloss.JoinHorizontal(lipgloss.Top, upload, " ", chat, "   ", brand)
}
