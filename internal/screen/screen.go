package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that consume Esc themselves,
// for example to close a modal. When CapturesEscape reports true the app
// forwards Esc to the screen instead of navigating back.
type EscapeHandler interface {
	CapturesEscape() bool
}

// Closer is implemented by screens that own work outliving a frame. The
// router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// LoginMsg asks the app to start a session for Handle.
type LoginMsg struct {
	Handle handle.Handle
}

// LogoutMsg asks the app to end the session and return to login.
type LogoutMsg struct{}

// ResumedMsg is delivered to a screen when it becomes active again after the
// screen above it was popped.
type ResumedMsg struct{}
