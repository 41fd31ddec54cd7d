// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/docuchat-dev/docuchat/internal/api"
	"github.com/docuchat-dev/docuchat/internal/progress"
)

// ============================================================================
// Navigation and Status Messages
// ============================================================================

// NavigateMsg requests a transition to another view. The session guard may
// reroute guarded targets to Login.
type NavigateMsg struct {
	State ViewState
}

// StatusMsg sets the transient status line. Failures never block further
// interaction; they surface here and fade.
type StatusMsg struct {
	Text    string
	IsError bool
}

// StatusClearMsg clears the transient status line.
type StatusClearMsg struct{}

// ============================================================================
// Identity Messages
// ============================================================================

// IdentityMsg carries the authenticated subject after a /me call.
type IdentityMsg struct {
	Sub string
}

// IdentityErrMsg signals a failed identity check.
type IdentityErrMsg struct {
	Err error
}

// ============================================================================
// Login Messages
// ============================================================================

// LoginOKMsg signals that the stored token validated against /me.
type LoginOKMsg struct {
	Sub string
}

// LoginFailedMsg signals that login validation failed; the stored token has
// already been cleared so the next attempt starts clean.
type LoginFailedMsg struct {
	Err error
}

// ============================================================================
// Document Messages
// ============================================================================

// DocumentsMsg carries a wholesale refresh of the document list, in server
// order.
type DocumentsMsg struct {
	Docs []api.Document
}

// DocumentsErrMsg signals a failed document listing.
type DocumentsErrMsg struct {
	Err error
}

// ============================================================================
// Upload Messages
// ============================================================================

// UploadDoneMsg signals that the server acknowledged an upload.
type UploadDoneMsg struct {
	Ack *api.UploadAck
}

// UploadErrMsg signals a failed upload.
type UploadErrMsg struct {
	Err error
}

// PercentResetMsg resets the cosmetic upload gauge back to zero.
type PercentResetMsg struct{}

// RefreshDocsMsg triggers the single deferred document-list refresh after a
// successful upload.
type RefreshDocsMsg struct{}

// ============================================================================
// Ask Messages
// ============================================================================

// AnswerMsg carries one ask result, replacing the previous one wholesale.
type AnswerMsg struct {
	Result *api.AnswerResult
}

// AskErrMsg signals a failed ask.
type AskErrMsg struct {
	Err error
}

// ============================================================================
// Progress Channel Messages
// ============================================================================

// Channel messages carry the generation of the view mount whose dial
// produced them. The app router discards any channel message whose
// generation is not the current mount's; a dial can resolve long after its
// mount was torn down, and view state alone cannot tell two mounts apart.

// ChannelOpenedMsg carries a freshly dialed progress channel.
type ChannelOpenedMsg struct {
	Channel *progress.Channel
	Gen     int
}

// ChannelErrMsg signals that dialing the progress channel failed. There is
// no reconnect; the channel stays down until the view remounts.
type ChannelErrMsg struct {
	Err error
	Gen int
}

// ChannelEventMsg carries one decoded server-pushed indexing event.
type ChannelEventMsg struct {
	Event progress.Event
	Gen   int
}

// ChannelClosedMsg signals that the progress channel closed.
type ChannelClosedMsg struct {
	Gen int
}
