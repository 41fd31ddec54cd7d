// Package commands provides Bubble Tea commands for DocuChat operations.
//
// Commands talk to the gateway with context.Background(): there is no
// network-level abort. Results that resolve after their view was torn down
// are discarded by the app router instead.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/progress"
	"github.com/docuchat-dev/docuchat/internal/session"
	"github.com/docuchat-dev/docuchat/internal/tui"
)

// LoginCmd stores the token and validates it against /me. On failure the
// stored token is cleared so the next attempt starts clean.
func LoginCmd(client *api.Client, store *session.Store, token string) tea.Cmd {
	return func() tea.Msg {
		if err := store.Save(token); err != nil {
			return tui.LoginFailedMsg{Err: err}
		}
		id, err := client.Identity(context.Background())
		if err != nil {
			_ = store.Clear()
			return tui.LoginFailedMsg{Err: err}
		}
		return tui.LoginOKMsg{Sub: id.Sub}
	}
}

// LoadIdentityCmd fetches the authenticated subject.
func LoadIdentityCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		id, err := client.Identity(context.Background())
		if err != nil {
			return tui.IdentityErrMsg{Err: err}
		}
		return tui.IdentityMsg{Sub: id.Sub}
	}
}

// LoadDocumentsCmd fetches the document list.
func LoadDocumentsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		docs, err := client.Documents(context.Background())
		if err != nil {
			return tui.DocumentsErrMsg{Err: err}
		}
		return tui.DocumentsMsg{Docs: docs}
	}
}

// UploadCmd submits the files at the given paths.
func UploadCmd(client *api.Client, paths []string) tea.Cmd {
	return func() tea.Msg {
		ack, err := client.Upload(context.Background(), paths)
		if err != nil {
			return tui.UploadErrMsg{Err: err}
		}
		return tui.UploadDoneMsg{Ack: ack}
	}
}

// AskCmd submits a question.
func AskCmd(client *api.Client, question string, topK int) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Ask(context.Background(), question, topK)
		if err != nil {
			return tui.AskErrMsg{Err: err}
		}
		return tui.AnswerMsg{Result: result}
	}
}

// DialProgressCmd opens the push channel for the given subject. gen is the
// mount generation stamped on every resulting message so the app router
// can discard results from mounts that no longer exist.
func DialProgressCmd(wsURL, sub string, gen int) tea.Cmd {
	return func() tea.Msg {
		ch, err := progress.Dial(context.Background(), wsURL, sub)
		if err != nil {
			return tui.ChannelErrMsg{Err: err, Gen: gen}
		}
		return tui.ChannelOpenedMsg{Channel: ch, Gen: gen}
	}
}

// WaitForEventCmd waits for the next decoded event from the channel. The
// app re-arms it after each delivered event; a closed channel ends the
// cycle.
func WaitForEventCmd(ch *progress.Channel, gen int) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch.Events()
		if !ok {
			return tui.ChannelClosedMsg{Gen: gen}
		}
		return tui.ChannelEventMsg{Event: e, Gen: gen}
	}
}

// RefreshDocsCmd schedules the single post-upload document refresh. The
// delay gives the server's asynchronous indexing a head start; the refresh
// is a best-effort heuristic, not a consistency guarantee.
func RefreshDocsCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return tui.RefreshDocsMsg{}
	})
}

// ResetPercentCmd schedules the cosmetic gauge reset.
func ResetPercentCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return tui.PercentResetMsg{}
	})
}

// ClearStatusCmd schedules the transient status line to fade.
func ClearStatusCmd(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return tui.StatusClearMsg{}
	})
}
