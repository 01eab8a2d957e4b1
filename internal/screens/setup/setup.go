// Package setup is the first screen: it asks what to study.
package setup

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scholar/internal/references"
	"github.com/abhisek/scholar/internal/router"
	"github.com/abhisek/scholar/internal/screen"
	"github.com/abhisek/scholar/internal/screens/lesson"
	"github.com/abhisek/scholar/internal/screens/loading"
	"github.com/abhisek/scholar/internal/ui/components"
	"github.com/abhisek/scholar/internal/ui/layout"
	"github.com/abhisek/scholar/internal/ui/theme"
)

const (
	fieldLevel = iota
	fieldSubject
	fieldTopic
	fieldCount
)

const fieldCharLimit = 120

// Defaults prefill the form.
type Defaults struct {
	AcademicLevel string
	Subject       string
	Topic         string
}

// SetupScreen collects academic level, subject and topic.
type SetupScreen struct {
	study  screen.Study
	fields [fieldCount]components.TextInput
	focus  int
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup form.
func New(study screen.Study, d Defaults) *SetupScreen {
	s := &SetupScreen{study: study}
	s.fields[fieldLevel] = components.NewTextInput("Academic level",
		strings.Join([]string{references.LevelHighSchool, references.LevelUndergraduate, references.LevelGraduate}, " / "),
		fieldCharLimit)
	s.fields[fieldSubject] = components.NewTextInput("Subject", "e.g. Biology", fieldCharLimit)
	s.fields[fieldTopic] = components.NewTextInput("Topic", "e.g. Cell respiration", fieldCharLimit)

	s.fields[fieldLevel].SetValue(d.AcademicLevel)
	s.fields[fieldSubject].SetValue(d.Subject)
	s.fields[fieldTopic].SetValue(d.Topic)
	return s
}

func (s *SetupScreen) Title() string {
	return "New lesson"
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start lesson"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "enter":
			if s.focus < fieldTopic {
				return s, s.moveFocus(1)
			}
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *SetupScreen) moveFocus(delta int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = (s.focus + delta + fieldCount) % fieldCount
	return s.fields[s.focus].Focus()
}

// submit validates the form and starts generating the lesson.
func (s *SetupScreen) submit() tea.Cmd {
	level := s.fields[fieldLevel].Value()
	subject := s.fields[fieldSubject].Value()
	topic := s.fields[fieldTopic].Value()

	for i, f := range s.fields {
		if f.Value() == "" {
			s.errMsg = f.Label + " is required"
			if i != s.focus {
				return s.moveFocus(i - s.focus)
			}
			return nil
		}
	}
	s.errMsg = ""

	study := s.study
	next := loading.New("Lesson", "Writing your lesson on "+topic, func(ctx context.Context) (screen.Screen, error) {
		st, err := study.Tutor.StartLesson(ctx, study.Key, level, subject, topic)
		if err != nil {
			return nil, err
		}
		return lesson.New(study, st), nil
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	formWidth := layout.ReadingWidth(width) / 2
	if formWidth < 40 {
		formWidth = 40
	}

	parts := []string{
		theme.Title.Render("What would you like to learn?"),
		theme.Hint.Render("You'll get a lesson, explain it back, and get feedback."),
		"",
	}
	for _, f := range s.fields {
		parts = append(parts, lipgloss.NewStyle().Width(formWidth).Render(f.View()), "")
	}
	if s.errMsg != "" {
		parts = append(parts, theme.Fail.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}
