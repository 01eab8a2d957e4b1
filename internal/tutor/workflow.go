package tutor

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/llm"
	"github.com/abhisek/scholar/internal/logger"
	"github.com/abhisek/scholar/internal/sections"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/store"
)

// SessionIDLayout formats the human-readable session id stamped on each
// new lesson.
const SessionIDLayout = "20060102_150405"

// Caller contract violations. The HTTP layer maps these to client errors.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrEmptyResponse = errors.New("no response provided")
	ErrNoContent     = errors.New("no content session found")
	ErrStaleContent  = errors.New("content has changed since this response was written")
)

// Workflow enforces the lesson/response order on top of a session.Store.
type Workflow struct {
	pipeline *Pipeline
	sessions session.Store
	events   store.EventRepo
	log      *logger.Logger
	now      func() time.Time
	writes   keyLocks

	rngMu sync.Mutex
	rng   *rand.Rand
}

// keyLocks serializes session writes per key within one process. Stores
// shared across processes (redis) are not covered.
type keyLocks struct {
	stripes [64]sync.Mutex
}

func (k *keyLocks) lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	m := &k.stripes[h.Sum32()%uint32(len(k.stripes))]
	m.Lock()
	return m.Unlock
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*Workflow)

// WithEventRepo records lesson and analysis events.
func WithEventRepo(repo store.EventRepo) WorkflowOption {
	return func(w *Workflow) { w.events = repo }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) WorkflowOption {
	return func(w *Workflow) { w.log = log }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) { w.now = now }
}

// WithRand sets the source used to pick celebration messages.
func WithRand(r *rand.Rand) WorkflowOption {
	return func(w *Workflow) { w.rng = r }
}

// NewWorkflow creates a Workflow.
func NewWorkflow(p *Pipeline, sessions session.Store, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		pipeline: p,
		sessions: sessions,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// StartLesson generates a lesson and replaces the session record for key.
// Any previous analysis is discarded.
func (w *Workflow) StartLesson(ctx context.Context, key, level, subject, topic string) (*session.State, error) {
	level, subject, topic = strings.TrimSpace(level), strings.TrimSpace(subject), strings.TrimSpace(topic)
	if level == "" || subject == "" || topic == "" {
		return nil, ErrMissingFields
	}

	content, err := w.pipeline.GenerateContent(llm.WithSessionKey(ctx, key), level, subject, topic)
	if err != nil {
		return nil, err
	}

	now := w.now()
	st := &session.State{
		AcademicLevel:  level,
		Subject:        subject,
		Topic:          topic,
		SessionID:      now.Format(SessionIDLayout),
		Content:        content,
		ContentVersion: uuid.NewString(),
		UpdatedAt:      now.UTC(),
	}
	unlock := w.writes.lock(key)
	err = w.sessions.Set(ctx, key, st)
	unlock()
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	w.log.Info("lesson generated",
		"session_key", key, "topic", topic, "source", string(content.Source),
		"words", content.WordCount)
	w.recordLesson(ctx, st)
	return st, nil
}

// SubmitResponse grades response against the current lesson. version, when
// non-empty, must match the lesson the learner was shown.
func (w *Workflow) SubmitResponse(ctx context.Context, key, response, version string) (*session.State, error) {
	if strings.TrimSpace(response) == "" {
		return nil, ErrEmptyResponse
	}

	st, err := w.current(ctx, key)
	if err != nil {
		return nil, err
	}
	if version != "" && version != st.ContentVersion {
		return nil, ErrStaleContent
	}

	analysis, err := w.pipeline.AnalyzeResponse(llm.WithSessionKey(ctx, key), response, st.Content, st.AcademicLevel, st.Subject, st.Topic)
	if err != nil {
		return nil, err
	}

	latest, err := w.attachAnalysis(ctx, key, st.ContentVersion, analysis, response)
	if err != nil {
		return nil, err
	}

	w.log.Info("response analyzed",
		"session_key", key, "topic", latest.Topic, "grade", analysis.Grade,
		"source", string(analysis.Source))
	w.recordAnalysis(ctx, latest, response)
	return latest, nil
}

// State returns the session for key. A missing session is returned as an
// empty State rather than an error.
func (w *Workflow) State(ctx context.Context, key string) (*session.State, error) {
	st, err := w.sessions.Get(ctx, key)
	if errors.Is(err, session.ErrNotFound) {
		return &session.State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return st, nil
}

// attachAnalysis stores analysis on the session for key, provided the
// lesson is still the one it was written against. A new lesson may have
// landed while the analysis ran.
func (w *Workflow) attachAnalysis(ctx context.Context, key, version string, analysis *lesson.Analysis, response string) (*session.State, error) {
	unlock := w.writes.lock(key)
	defer unlock()

	latest, err := w.current(ctx, key)
	if err != nil {
		return nil, err
	}
	if latest.ContentVersion != version {
		return nil, ErrStaleContent
	}

	latest.LastAnalysis = analysis
	latest.LastResponse = response
	latest.UpdatedAt = w.now().UTC()
	if err := w.sessions.Set(ctx, key, latest); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return latest, nil
}

// Reset forgets everything stored for key.
func (w *Workflow) Reset(ctx context.Context, key string) error {
	unlock := w.writes.lock(key)
	defer unlock()
	if err := w.sessions.Clear(ctx, key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Celebration builds the banner for the last analysis in st.
func (w *Workflow) Celebration(st *session.State) Celebration {
	if st == nil || st.LastAnalysis == nil {
		return Celebration{}
	}
	if w.rng == nil {
		return NewCelebration(st.LastAnalysis.Grade, st.Topic, nil)
	}
	w.rngMu.Lock()
	defer w.rngMu.Unlock()
	return NewCelebration(st.LastAnalysis.Grade, st.Topic, w.rng)
}

func (w *Workflow) current(ctx context.Context, key string) (*session.State, error) {
	st, err := w.sessions.Get(ctx, key)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNoContent
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !st.HasContent() {
		return nil, ErrNoContent
	}
	return st, nil
}

func (w *Workflow) recordLesson(ctx context.Context, st *session.State) {
	if w.events == nil {
		return
	}
	err := w.events.AppendLessonEvent(ctx, store.LessonEventData{
		SessionID:      st.SessionID,
		ContentVersion: st.ContentVersion,
		AcademicLevel:  st.AcademicLevel,
		Subject:        st.Subject,
		Topic:          st.Topic,
		Source:         string(st.Content.Source),
		WordCount:      st.Content.WordCount,
		KeyPoints:      len(st.Content.KeyPoints),
	})
	if err != nil {
		w.log.Warn("failed to record lesson event", "error", err)
	}
}

func (w *Workflow) recordAnalysis(ctx context.Context, st *session.State, response string) {
	if w.events == nil {
		return
	}
	a := st.LastAnalysis
	err := w.events.AppendAnalysisEvent(ctx, store.AnalysisEventData{
		SessionID:      st.SessionID,
		ContentVersion: st.ContentVersion,
		Topic:          st.Topic,
		Source:         string(a.Source),
		Grade:          a.Grade,
		CanProceed:     lesson.Passed(a.Grade),
		ResponseWords:  sections.WordCount(response),
	})
	if err != nil {
		w.log.Warn("failed to record analysis event", "error", err)
	}
}
