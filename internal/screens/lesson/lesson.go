// Package lesson renders a generated lesson: outline, body, key points
// and references.
package lesson

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/router"
	"github.com/abhisek/scholar/internal/screen"
	"github.com/abhisek/scholar/internal/screens/respond"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/ui/layout"
	"github.com/abhisek/scholar/internal/ui/theme"
)

// LessonScreen is a scrollable view of the current lesson.
type LessonScreen struct {
	study  screen.Study
	state  *session.State
	offset int
	height int
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.HeaderContextProvider = (*LessonScreen)(nil)

// New creates a lesson screen for st, which must carry content.
func New(study screen.Study, st *session.State) *LessonScreen {
	return &LessonScreen{study: study, state: st}
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	return "Lesson"
}

func (s *LessonScreen) HeaderContext() string {
	return s.state.Subject + " · " + s.state.Topic
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "R", Description: "Explain it back"},
		{Key: "Esc", Description: "New topic"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	page := s.height - 2
	if page < 1 {
		page = 1
	}

	switch kmsg.String() {
	case "up", "k":
		s.offset--
	case "down", "j":
		s.offset++
	case "pgup", "b":
		s.offset -= page
	case "pgdown", "space", " ":
		s.offset += page
	case "home", "g":
		s.offset = 0
	case "end", "G":
		s.offset = 1 << 30
	case "r", "enter":
		next := respond.New(s.study, s.state)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	if s.offset < 0 {
		s.offset = 0
	}
	return s, nil
}

func (s *LessonScreen) View(width, height int) string {
	s.height = height
	doc := Render(s.state.Content, layout.ReadingWidth(width))
	view, off := layout.Clip(doc, s.offset, height)
	s.offset = off
	return view
}

// Render lays the lesson out as one document wrapped to width.
func Render(c *lesson.Content, width int) string {
	if c == nil {
		return theme.Dim.Render("No lesson yet.")
	}

	var b strings.Builder

	b.WriteString(theme.Title.Render(c.Topic))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%s · %s · %d words", c.Subject, c.AcademicLevel, c.WordCount)))
	b.WriteString("\n")
	if c.Source == lesson.SourceFallback {
		b.WriteString(theme.Warning.Render(layout.Wrap(
			"The tutor could not be reached, so this is a generic outline. Try again later for a full lesson.", width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(c.Structure) > 0 {
		b.WriteString(theme.Heading.Render("Outline"))
		b.WriteString("\n")
		for _, sec := range c.Structure {
			b.WriteString("  " + sec.Title + "\n")
			for _, sub := range sec.Subsections {
				b.WriteString(theme.Dim.Render("      "+sub) + "\n")
			}
		}
		b.WriteString("\n")
	}

	for _, line := range strings.Split(c.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			b.WriteString(theme.Heading.Render(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))))
		case trimmed == "":
		default:
			b.WriteString(theme.Body.Render(layout.Wrap(line, width)))
		}
		b.WriteString("\n")
	}

	if len(c.KeyPoints) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Key points"))
		b.WriteString("\n")
		for _, p := range c.KeyPoints {
			b.WriteString(layout.Wrap("  • "+p, width) + "\n")
		}
	}

	if len(c.References) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Heading.Render("Further reading"))
		b.WriteString("\n")
		for _, r := range c.References {
			b.WriteString("  " + r.Title + theme.Dim.Render("  ("+r.Type+")") + "\n")
			b.WriteString("    " + theme.Link.Render(r.URL) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
