// Package screen defines the contract every terminal screen satisfies.
package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/tutor"
	"github.com/abhisek/scholar/internal/ui/layout"
)

// Screen is one page of the terminal client. The router owns the stack
// and only the top screen receives messages.
type Screen interface {
	// Init runs once when the screen becomes active.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HeaderContextProvider lets a screen show what is being studied on the
// right of the header.
type HeaderContextProvider interface {
	HeaderContext() string
}

// Tutor is the part of the lesson workflow the screens drive.
type Tutor interface {
	StartLesson(ctx context.Context, key, level, subject, topic string) (*session.State, error)
	SubmitResponse(ctx context.Context, key, response, version string) (*session.State, error)
	Celebration(st *session.State) tutor.Celebration
}

// Study binds the screens to one learner's session.
type Study struct {
	Tutor Tutor
	Key   string
}
