package widget

import "github.com/charmbracelet/lipgloss"

// SurfaceID identifies one display surface. Ids are assigned by the host.
type SurfaceID int

// Reason says what started a refresh cycle
type Reason int

const (
	// SystemUpdate is a periodic or host-initiated refresh
	SystemUpdate Reason = iota
	// UserTap is a refresh requested from a surface
	UserTap
)

func (r Reason) String() string {
	switch r {
	case SystemUpdate:
		return "system_update"
	case UserTap:
		return "user_tap"
	default:
		return "unknown"
	}
}

// RefreshState is what a surface shows
type RefreshState int

const (
	Refreshing RefreshState = iota
	Open
	Closed
	Error
)

func (s RefreshState) String() string {
	switch s {
	case Refreshing:
		return "refreshing"
	case Open:
		return "open"
	case Closed:
		return "closed"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// RetryAction is attached to a rendered state that can be tapped to refresh
// again.
type RetryAction struct {
	Reason Reason
}

// RenderedState is the immutable descriptor pushed to a surface
type RenderedState struct {
	State RefreshState
	Label string
	Color lipgloss.Color
	Retry *RetryAction
}

// Tappable reports whether tapping the surface starts a new refresh
func (r RenderedState) Tappable() bool {
	return r.Retry != nil
}

var (
	colorText  = lipgloss.Color("15")
	colorOpen  = lipgloss.Color("10")
	colorClose = lipgloss.Color("9")
)

// Render maps a state to the descriptor shown on every surface. Each call
// returns a fresh value; nothing is shared between pushes.
func Render(s RefreshState) RenderedState {
	switch s {
	case Refreshing:
		return RenderedState{State: s, Label: "Refreshing…", Color: colorText}
	case Open:
		return RenderedState{State: s, Label: "Analog is OPEN", Color: colorOpen, Retry: &RetryAction{Reason: UserTap}}
	case Closed:
		return RenderedState{State: s, Label: "Analog is CLOSED", Color: colorClose, Retry: &RetryAction{Reason: UserTap}}
	default:
		return RenderedState{State: Error, Label: "Error", Color: colorText, Retry: &RetryAction{Reason: UserTap}}
	}
}
