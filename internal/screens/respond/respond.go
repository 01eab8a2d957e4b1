// Package respond lets the learner explain the lesson back in their own
// words.
package respond

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scholar/internal/router"
	"github.com/abhisek/scholar/internal/screen"
	"github.com/abhisek/scholar/internal/screens/loading"
	"github.com/abhisek/scholar/internal/screens/result"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/ui/layout"
	"github.com/abhisek/scholar/internal/ui/theme"
)

const responseCharLimit = 8000

// RespondScreen is a multi-line editor for the learner's explanation.
type RespondScreen struct {
	study  screen.Study
	state  *session.State
	editor textarea.Model
	errMsg string
}

var _ screen.Screen = (*RespondScreen)(nil)
var _ screen.KeyHintProvider = (*RespondScreen)(nil)
var _ screen.HeaderContextProvider = (*RespondScreen)(nil)

// New creates the editor for the lesson in st.
func New(study screen.Study, st *session.State) *RespondScreen {
	ta := textarea.New()
	ta.Placeholder = "Explain " + st.Topic + " as if teaching a friend. Use examples."
	ta.CharLimit = responseCharLimit
	ta.ShowLineNumbers = false
	if st.LastResponse != "" {
		ta.SetValue(st.LastResponse)
	}
	return &RespondScreen{study: study, state: st, editor: ta}
}

func (s *RespondScreen) Init() tea.Cmd {
	return s.editor.Focus()
}

func (s *RespondScreen) Title() string {
	return "Your explanation"
}

func (s *RespondScreen) HeaderContext() string {
	return s.state.Subject + " · " + s.state.Topic
}

func (s *RespondScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Esc", Description: "Back to lesson"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Value returns the current text.
func (s *RespondScreen) Value() string {
	return s.editor.Value()
}

func (s *RespondScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "ctrl+s" {
		return s, s.submit()
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *RespondScreen) submit() tea.Cmd {
	response := s.editor.Value()
	if strings.TrimSpace(response) == "" {
		s.errMsg = "Write something first. Even a rough explanation helps."
		return nil
	}
	s.errMsg = ""

	study, version := s.study, s.state.ContentVersion
	next := loading.New("Feedback", "Reviewing your explanation", func(ctx context.Context) (screen.Screen, error) {
		st, err := study.Tutor.SubmitResponse(ctx, study.Key, response, version)
		if err != nil {
			return nil, err
		}
		return result.New(st, study.Tutor.Celebration(st)), nil
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *RespondScreen) View(width, height int) string {
	w := layout.ReadingWidth(width)
	s.editor.SetWidth(w)
	editorHeight := height - 6
	if editorHeight < 3 {
		editorHeight = 3
	}
	s.editor.SetHeight(editorHeight)

	parts := []string{
		theme.Title.Render("Explain " + s.state.Topic + " in your own words"),
		theme.Hint.Render("Cover the key ideas, give an example, and say why it matters."),
		"",
		s.editor.View(),
	}
	if s.errMsg != "" {
		parts = append(parts, theme.Fail.Render(s.errMsg))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
