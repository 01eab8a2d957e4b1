package respond

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/router"
	"github.com/abhisek/scholar/internal/screen"
	"github.com/abhisek/scholar/internal/screens/loading"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/tutor"
)

type fakeTutor struct {
	response, version string
}

func (f *fakeTutor) StartLesson(context.Context, string, string, string, string) (*session.State, error) {
	return nil, nil
}

func (f *fakeTutor) SubmitResponse(_ context.Context, _, response, version string) (*session.State, error) {
	f.response, f.version = response, version
	return &session.State{Topic: "Cells", LastAnalysis: &lesson.Analysis{Grade: 9, CanProceed: true}}, nil
}

func (f *fakeTutor) Celebration(*session.State) tutor.Celebration {
	return tutor.Celebration{Show: true, Message: "Well done"}
}

func ctrlS() tea.KeyPressMsg { return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl} }

func TestEmptySubmitIsRejected(t *testing.T) {
	s := New(screen.Study{Tutor: &fakeTutor{}}, &session.State{Topic: "Cells", ContentVersion: "v1"})
	s.editor.SetValue("   \n  ")

	_, cmd := s.Update(ctrlS())
	if cmd != nil {
		t.Fatal("blank response must not be submitted")
	}
	if s.errMsg == "" {
		t.Fatal("expected an inline error")
	}
}

func TestSubmitCarriesVersion(t *testing.T) {
	ft := &fakeTutor{}
	s := New(screen.Study{Tutor: ft, Key: "k"}, &session.State{Topic: "Cells", ContentVersion: "v1"})
	s.editor.SetValue("Cells have membranes.")

	_, cmd := s.Update(ctrlS())
	if cmd == nil {
		t.Fatal("expected a command")
	}
	repl, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := repl.Screen.(*loading.LoadingScreen); !ok {
		t.Fatalf("expected loading screen, got %T", repl.Screen)
	}
	if ft.response != "" {
		t.Error("submission should run in the loading screen, not inline")
	}
}

func TestPrefillsLastResponse(t *testing.T) {
	s := New(screen.Study{}, &session.State{Topic: "Cells", LastResponse: "first try"})
	if s.Value() != "first try" {
		t.Errorf("Value() = %q", s.Value())
	}
}
