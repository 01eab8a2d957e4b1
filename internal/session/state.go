// Package session keeps per-learner workflow state keyed by an opaque
// session key.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/scholar/internal/lesson"
)

// ErrNotFound is returned by Get when no state exists for a key.
var ErrNotFound = errors.New("session not found")

// State is everything remembered between requests for one learner. A new
// lesson replaces the whole record.
type State struct {
	AcademicLevel  string           `json:"academic_level"`
	Subject        string           `json:"subject"`
	Topic          string           `json:"topic"`
	SessionID      string           `json:"session_id"`
	Content        *lesson.Content  `json:"generated_content,omitempty"`
	ContentVersion string           `json:"content_version"`
	LastAnalysis   *lesson.Analysis `json:"last_analysis,omitempty"`
	LastResponse   string           `json:"last_response,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// HasContent reports whether a lesson has been generated.
func (s *State) HasContent() bool {
	return s != nil && s.Content != nil
}

// Store persists State by session key. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the state for key or ErrNotFound.
	Get(ctx context.Context, key string) (*State, error)

	// Set replaces the state for key.
	Set(ctx context.Context, key string, st *State) error

	// Clear removes the state for key. Missing keys are not an error.
	Clear(ctx context.Context, key string) error
}
