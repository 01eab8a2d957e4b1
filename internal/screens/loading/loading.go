// Package loading shows a spinner while a generation call runs and then
// hands over to the screen the call produced.
package loading

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scholar/internal/router"
	"github.com/abhisek/scholar/internal/screen"
	"github.com/abhisek/scholar/internal/ui/layout"
	"github.com/abhisek/scholar/internal/ui/theme"
)

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Job does the slow work and returns the screen to show next.
type Job func(ctx context.Context) (screen.Screen, error)

type tickMsg time.Time

// doneMsg carries the job result. id ties it to the screen that started
// the job so a late result cannot land on a newer loading screen.
type doneMsg struct {
	id   *LoadingScreen
	next screen.Screen
	err  error
}

// LoadingScreen runs a Job once and replaces itself with the result.
type LoadingScreen struct {
	title   string
	label   string
	job     Job
	frame   int
	elapsed time.Duration
	err     error
	done    bool
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)

// New creates a loading screen. label describes the work in progress.
func New(title, label string, job Job) *LoadingScreen {
	return &LoadingScreen{title: title, label: label, job: job}
}

func (s *LoadingScreen) Title() string {
	return s.title
}

func (s *LoadingScreen) Init() tea.Cmd {
	return tea.Batch(tick(), s.run())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *LoadingScreen) run() tea.Cmd {
	return func() tea.Msg {
		next, err := s.job(context.Background())
		return doneMsg{id: s, next: next, err: err}
	}
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.done {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		s.elapsed += tickInterval
		return s, tick()

	case doneMsg:
		if msg.id != s {
			return s, nil
		}
		s.done = true
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		next := msg.next
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	if s.err != nil {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *LoadingScreen) View(width, height int) string {
	var body string
	if s.err != nil {
		body = lipgloss.JoinVertical(lipgloss.Center,
			theme.Fail.Render("Something went wrong"),
			"",
			theme.Dim.Render(layout.Wrap(s.err.Error(), layout.ReadingWidth(width)/2)),
		)
	} else {
		secs := int(s.elapsed.Seconds())
		body = lipgloss.JoinVertical(lipgloss.Center,
			theme.Title.Render(spinnerFrames[s.frame]+"  "+s.label),
			"",
			theme.Hint.Render(elapsedLabel(secs)),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func elapsedLabel(secs int) string {
	if secs < 1 {
		return "just a moment"
	}
	return (time.Duration(secs) * time.Second).String()
}
