package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose narrows LLM request queries. Ignored elsewhere.
	Purpose string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls that share a purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// ModelUsage aggregates LLM calls that share a model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LessonEventData records one generated lesson.
type LessonEventData struct {
	SessionID      string
	ContentVersion string
	AcademicLevel  string
	Subject        string
	Topic          string
	Source         string
	WordCount      int
	KeyPoints      int
}

// LessonEvent is a stored lesson event.
type LessonEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LessonEventData
}

// AnalysisEventData records one graded response.
type AnalysisEventData struct {
	SessionID      string
	ContentVersion string
	Topic          string
	Source         string
	Grade          int
	CanProceed     bool
	ResponseWords  int
}

// AnalysisEvent is a stored analysis event.
type AnalysisEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	AnalysisEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendLessonEvent records a generated lesson.
	AppendLessonEvent(ctx context.Context, data LessonEventData) error

	// AppendAnalysisEvent records a graded response.
	AppendAnalysisEvent(ctx context.Context, data AnalysisEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single LLM request event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates LLM calls by purpose, busiest first.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates LLM calls by model, busiest first.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// QueryLessons returns lesson events, newest first.
	QueryLessons(ctx context.Context, opts QueryOpts) ([]LessonEvent, error)

	// QueryAnalyses returns analysis events, newest first.
	QueryAnalyses(ctx context.Context, opts QueryOpts) ([]AnalysisEvent, error)
}

// SessionRecord is a serialized session state keyed by session key.
type SessionRecord struct {
	Key       string
	Data      []byte
	UpdatedAt time.Time
	ExpiresAt time.Time // zero means no expiry
}

// SessionRepo persists session state records.
type SessionRepo interface {
	// Save inserts or replaces the record for rec.Key.
	Save(ctx context.Context, rec SessionRecord) error

	// Load returns the record for key, or ErrNotFound when absent or expired.
	Load(ctx context.Context, key string) (*SessionRecord, error)

	// Delete removes the record for key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Prune deletes records that expired before now and returns the count.
	Prune(ctx context.Context, now time.Time) (int, error)
}
