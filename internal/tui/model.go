// Package tui implements the terminal user interface using Bubble Tea.
package tui

// ViewState represents the current view of the TUI, mirroring the
// product's routes: Login is public, Upload and Chat sit behind the
// session guard.
type ViewState int

const (
	StateLogin ViewState = iota
	StateUpload
	StateChat
)

// String returns the route-like name of the state.
func (s ViewState) String() string {
	switch s {
	case StateUpload:
		return "upload"
	case StateChat:
		return "chat"
	default:
		return "login"
	}
}

// Guarded reports whether the state requires a stored credential.
func (s ViewState) Guarded() bool {
	return s == StateUpload || s == StateChat
}
