package tutor

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/scholar/internal/generation"
	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/llm"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/store"
)

type recordingEvents struct {
	store.EventRepo
	lessons  []store.LessonEventData
	analyses []store.AnalysisEventData
}

func (r *recordingEvents) AppendLessonEvent(_ context.Context, d store.LessonEventData) error {
	r.lessons = append(r.lessons, d)
	return nil
}

func (r *recordingEvents) AppendAnalysisEvent(_ context.Context, d store.AnalysisEventData) error {
	r.analyses = append(r.analyses, d)
	return nil
}

func newTestWorkflow(responses ...llm.MockResponse) (*Workflow, *session.MemoryStore, *recordingEvents, *llm.MockProvider) {
	p, mock := newTestPipeline(responses...)
	sessions := session.NewMemoryStore(0)
	events := &recordingEvents{}
	clock := time.Date(2026, 3, 1, 9, 30, 15, 0, time.Local)
	w := NewWorkflow(p, sessions,
		WithEventRepo(events),
		WithClock(func() time.Time { return clock }),
		WithRand(rand.New(rand.NewPCG(1, 1))),
	)
	return w, sessions, events, mock
}

func TestStartLesson_MissingFields(t *testing.T) {
	w, _, _, mock := newTestWorkflow()
	cases := [][3]string{
		{"", "Biology", "Cells"},
		{"high_school", " ", "Cells"},
		{"high_school", "Biology", ""},
	}
	for _, c := range cases {
		_, err := w.StartLesson(t.Context(), "k", c[0], c[1], c[2])
		if !errors.Is(err, ErrMissingFields) {
			t.Fatalf("%v: expected ErrMissingFields, got %v", c, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Fatal("no generation should happen for invalid input")
	}
}

func TestStartLesson_StoresState(t *testing.T) {
	w, sessions, events, _ := newTestWorkflow(llm.MockResponse{Text: sampleLesson})

	st, err := w.StartLesson(t.Context(), "k", "high_school", "Biology", "Photosynthesis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.SessionID != "20260301_093015" {
		t.Fatalf("session id = %q", st.SessionID)
	}
	if st.ContentVersion == "" || !st.HasContent() {
		t.Fatalf("incomplete state: %+v", st)
	}

	stored, err := sessions.Get(t.Context(), "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ContentVersion != st.ContentVersion || stored.Topic != "Photosynthesis" {
		t.Fatalf("stored state differs: %+v", stored)
	}
	if len(events.lessons) != 1 || events.lessons[0].Source != "live" {
		t.Fatalf("lesson events = %+v", events.lessons)
	}
}

func TestSubmitResponse_Errors(t *testing.T) {
	w, _, _, _ := newTestWorkflow(llm.MockResponse{Text: sampleLesson})

	if _, err := w.SubmitResponse(t.Context(), "k", "answer", ""); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}

	st, err := w.StartLesson(t.Context(), "k", "high_school", "Biology", "Photosynthesis")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := w.SubmitResponse(t.Context(), "k", "  \n\t", st.ContentVersion); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
	if _, err := w.SubmitResponse(t.Context(), "k", "answer", "some-old-version"); !errors.Is(err, ErrStaleContent) {
		t.Fatalf("expected ErrStaleContent, got %v", err)
	}
}

func TestSubmitResponse_StoresAnalysis(t *testing.T) {
	w, sessions, events, _ := newTestWorkflow(
		llm.MockResponse{Text: sampleLesson},
		llm.MockResponse{Text: "## GRADE\nGrade: 9/10\n"},
	)

	st, err := w.StartLesson(t.Context(), "k", "high_school", "Biology", "Photosynthesis")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	got, err := w.SubmitResponse(t.Context(), "k", "Light becomes sugar.", st.ContentVersion)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.LastAnalysis == nil || got.LastAnalysis.Grade != 9 || !got.LastAnalysis.CanProceed {
		t.Fatalf("unexpected analysis: %+v", got.LastAnalysis)
	}
	if got.LastResponse != "Light becomes sugar." {
		t.Fatalf("last response = %q", got.LastResponse)
	}

	stored, _ := sessions.Get(t.Context(), "k")
	if stored.LastAnalysis == nil || stored.ContentVersion != st.ContentVersion {
		t.Fatalf("analysis not persisted: %+v", stored)
	}
	if len(events.analyses) != 1 || events.analyses[0].Grade != 9 || events.analyses[0].ResponseWords != 3 {
		t.Fatalf("analysis events = %+v", events.analyses)
	}

	c := w.Celebration(got)
	if !c.Show {
		t.Fatal("grade 9 should celebrate")
	}
}

func TestSubmitResponse_EmptyVersionMeansCurrent(t *testing.T) {
	w, _, _, _ := newTestWorkflow(
		llm.MockResponse{Text: sampleLesson},
		llm.MockResponse{Text: sampleAnalysis},
	)
	if _, err := w.StartLesson(t.Context(), "k", "high_school", "Biology", "Photosynthesis"); err != nil {
		t.Fatalf("start: %v", err)
	}
	got, err := w.SubmitResponse(t.Context(), "k", "answer", "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.LastAnalysis.Grade != 6 {
		t.Fatalf("grade = %d", got.LastAnalysis.Grade)
	}
	if c := w.Celebration(got); c.Show {
		t.Fatal("grade 6 should not celebrate")
	}
}

func TestStartLesson_RegenerationClearsAnalysis(t *testing.T) {
	w, _, _, _ := newTestWorkflow(
		llm.MockResponse{Text: sampleLesson},
		llm.MockResponse{Text: sampleAnalysis},
		llm.MockResponse{Text: sampleLesson},
	)
	first, _ := w.StartLesson(t.Context(), "k", "high_school", "Biology", "Photosynthesis")
	if _, err := w.SubmitResponse(t.Context(), "k", "answer", first.ContentVersion); err != nil {
		t.Fatalf("submit: %v", err)
	}

	second, err := w.StartLesson(t.Context(), "k", "undergraduate", "Biology", "Respiration")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if second.ContentVersion == first.ContentVersion {
		t.Fatal("content version must change on regeneration")
	}

	st, err := w.State(t.Context(), "k")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st.LastAnalysis != nil || st.LastResponse != "" || st.Topic != "Respiration" {
		t.Fatalf("regeneration must replace the record: %+v", st)
	}

	// A response written against the first lesson is now stale.
	if _, err := w.SubmitResponse(t.Context(), "k", "late answer", first.ContentVersion); !errors.Is(err, ErrStaleContent) {
		t.Fatalf("expected ErrStaleContent, got %v", err)
	}
}

func TestStateAndReset(t *testing.T) {
	w, _, _, _ := newTestWorkflow(llm.MockResponse{Text: sampleLesson})

	st, err := w.State(t.Context(), "k")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st.HasContent() || st.Topic != "" {
		t.Fatalf("expected empty state, got %+v", st)
	}

	if _, err := w.StartLesson(t.Context(), "k", "high_school", "Biology", "Photosynthesis"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := w.Reset(t.Context(), "k"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	st, _ = w.State(t.Context(), "k")
	if st.HasContent() {
		t.Fatal("reset should clear content")
	}
	if _, err := w.SubmitResponse(t.Context(), "k", "answer", ""); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent after reset, got %v", err)
	}
}

func TestWorkflow_FallbackIsTagged(t *testing.T) {
	p := NewPipeline(generation.NewClient(nil, nil, generation.Config{}))
	w := NewWorkflow(p, session.NewMemoryStore(0))

	st, err := w.StartLesson(t.Context(), "k", "high_school", "Chemistry", "Bonds")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if st.Content.Source != lesson.SourceFallback {
		t.Fatalf("source = %q", st.Content.Source)
	}
	got, err := w.SubmitResponse(t.Context(), "k", "answer", st.ContentVersion)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.LastAnalysis.Source != lesson.SourceFallback || got.LastAnalysis.Grade != 5 {
		t.Fatalf("unexpected analysis: %+v", got.LastAnalysis)
	}
}

// interleavingStore runs onSet once, just before the next Set it sees.
type interleavingStore struct {
	session.Store
	mu    sync.Mutex
	onSet func()
}

func (s *interleavingStore) Set(ctx context.Context, key string, st *session.State) error {
	s.mu.Lock()
	hook := s.onSet
	s.onSet = nil
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return s.Store.Set(ctx, key, st)
}

func TestSubmitResponse_LessonDuringSaveIsNotOverwritten(t *testing.T) {
	p, _ := newTestPipeline()
	mem := session.NewMemoryStore(0)
	sessions := &interleavingStore{Store: mem}
	w := NewWorkflow(p, sessions)

	first, err := w.StartLesson(t.Context(), "k", "high_school", "Biology", "Cells")
	if err != nil {
		t.Fatalf("StartLesson: %v", err)
	}

	next := make(chan *session.State, 1)
	sessions.mu.Lock()
	sessions.onSet = func() {
		go func() {
			st, err := w.StartLesson(context.Background(), "k", "high_school", "Biology", "Mitosis")
			if err != nil {
				t.Errorf("second StartLesson: %v", err)
			}
			next <- st
		}()
		// Give the new lesson a chance to reach its own Set.
		time.Sleep(50 * time.Millisecond)
	}
	sessions.mu.Unlock()

	if _, err := w.SubmitResponse(t.Context(), "k", "Cells have membranes.", first.ContentVersion); err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	second := <-next

	got, err := mem.Get(t.Context(), "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Topic != "Mitosis" || got.ContentVersion != second.ContentVersion {
		t.Fatalf("stored topic %q version %q, want the newer lesson", got.Topic, got.ContentVersion)
	}
	if got.LastAnalysis != nil {
		t.Fatal("analysis of the old lesson leaked onto the new one")
	}
}

func TestWorkflow_TagsProviderCallsWithSessionKey(t *testing.T) {
	w, _, _, _ := newTestWorkflow()
	var seen []string
	w.pipeline = NewPipeline(generation.NewClient(keyRecorder{seen: &seen}, nil, generation.Config{}))

	st, err := w.StartLesson(t.Context(), "learner-7", "graduate", "Physics", "Entropy")
	if err != nil {
		t.Fatalf("StartLesson: %v", err)
	}
	if _, err := w.SubmitResponse(t.Context(), "learner-7", "Disorder grows.", st.ContentVersion); err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if len(seen) != 2 || seen[0] != "learner-7" || seen[1] != "learner-7" {
		t.Fatalf("session keys seen by provider = %v", seen)
	}
}

// keyRecorder records the session key of each call and replies with text.
type keyRecorder struct {
	seen *[]string
}

func (k keyRecorder) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	*k.seen = append(*k.seen, llm.SessionKeyFrom(ctx))
	return &llm.Response{Text: "## GRADE\nGrade: 7/10"}, nil
}

func (keyRecorder) ModelID() string { return "recorder" }
