// Package result shows the critique of a learner's explanation.
package result

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/router"
	"github.com/abhisek/scholar/internal/screen"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/tutor"
	"github.com/abhisek/scholar/internal/ui/components"
	"github.com/abhisek/scholar/internal/ui/layout"
	"github.com/abhisek/scholar/internal/ui/theme"
)

// ResultScreen shows grade, celebration and feedback.
type ResultScreen struct {
	state       *session.State
	celebration tutor.Celebration
	menu        components.Menu
	offset      int
	height      int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.HeaderContextProvider = (*ResultScreen)(nil)

// New creates the result screen for the analysis stored in st.
func New(st *session.State, c tutor.Celebration) *ResultScreen {
	return &ResultScreen{
		state:       st,
		celebration: c,
		menu: components.NewMenu([]components.MenuItem{
			{Label: "Try again", Action: func() tea.Cmd {
				return func() tea.Msg { return router.PopScreenMsg{} }
			}},
			{Label: "New topic", Action: func() tea.Cmd {
				return func() tea.Msg { return router.PopToRootMsg{} }
			}},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		}),
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Feedback"
}

func (s *ResultScreen) HeaderContext() string {
	return s.state.Subject + " · " + s.state.Topic
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back to lesson"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	page := s.height - 2
	if page < 1 {
		page = 1
	}
	switch kmsg.String() {
	case "pgup":
		s.offset -= page
		if s.offset < 0 {
			s.offset = 0
		}
		return s, nil
	case "pgdown":
		s.offset += page
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResultScreen) View(width, height int) string {
	s.height = height
	w := layout.ReadingWidth(width)

	menu := s.menu.View()
	bodyHeight := height - lipgloss.Height(menu) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	doc := Render(s.state.LastAnalysis, s.celebration, w)
	view, off := layout.Clip(doc, s.offset, bodyHeight)
	s.offset = off

	return view + "\n\n" + menu
}

// Render lays out an analysis as one document wrapped to width.
func Render(a *lesson.Analysis, c tutor.Celebration, width int) string {
	if a == nil {
		return theme.Dim.Render("No feedback yet.")
	}

	var b strings.Builder

	if c.Show {
		b.WriteString(theme.Banner.Render(c.Emojis + "  " + c.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Heading.Render("Grade"))
	b.WriteString("\n")
	b.WriteString(components.NewGradeBar(a.Grade, a.CanProceed, width/2).View())
	b.WriteString("\n")
	if a.GradeExplanation != "" {
		b.WriteString(theme.Dim.Render(layout.Wrap(a.GradeExplanation, width)))
		b.WriteString("\n")
	}
	if a.Source == lesson.SourceFallback {
		b.WriteString(theme.Warning.Render(layout.Wrap(
			"The tutor could not be reached, so this grade is a placeholder.", width)))
		b.WriteString("\n")
	}

	list := func(title string, items []string, style lipgloss.Style) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(style.Render(title))
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString(layout.Wrap("  • "+it, width) + "\n")
		}
	}
	text := func(title, body string) {
		if body == "" {
			return
		}
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render(title))
		b.WriteString("\n")
		b.WriteString(layout.Wrap(body, width) + "\n")
	}

	list("Strengths", a.Strengths, theme.Pass)
	list("Incorrect statements", a.FalsePoints, theme.Fail)
	list("Missing points", a.MissingPoints, theme.Warning)
	text("Examples", a.ExamplesQuality)
	list("Areas to strengthen", a.AreasLacking, theme.Heading)
	list("How to improve", a.Improvements, theme.Heading)
	text("Feedback", a.DetailedFeedback)
	text("Next steps", a.NextSteps)

	return strings.TrimRight(b.String(), "\n")
}
