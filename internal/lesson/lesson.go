// Package lesson holds the records produced by the content and analysis
// pipelines. Field names in JSON match the keys the web client reads.
package lesson

import "time"

// Source tells whether text came from the model or from a placeholder.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// ProceedGrade is the lowest grade at which a learner may move on.
const ProceedGrade = 9

// Section is one level-2 heading of a lesson with its level-3 children.
type Section struct {
	Title       string   `json:"title"`
	Subsections []string `json:"subsections"`
}

// Reference is a constructed link to an external resource. URLs are built,
// never fetched.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Content is a generated lesson for one (level, subject, topic) triple.
// It is not modified after the content pipeline returns it.
type Content struct {
	Body          string      `json:"content"`
	Structure     []Section   `json:"structure"`
	References    []Reference `json:"references"`
	KeyPoints     []string    `json:"key_points"`
	WordCount     int         `json:"word_count"`
	AcademicLevel string      `json:"academic_level"`
	Subject       string      `json:"subject"`
	Topic         string      `json:"topic"`
	Source        Source      `json:"source"`
	GeneratedAt   time.Time   `json:"generated_at"`
}

// Analysis is the structured critique of one learner response.
type Analysis struct {
	Strengths         []string `json:"strengths"`
	FalsePoints       []string `json:"false_points"`
	MissingPoints     []string `json:"missing_points"`
	ExamplesQuality   string   `json:"examples_quality"`
	AreasLacking      []string `json:"areas_lacking"`
	Improvements      []string `json:"improvements"`
	Grade             int      `json:"grade"`
	GradeExplanation  string   `json:"grade_explanation"`
	DetailedFeedback  string   `json:"detailed_feedback"`
	NextSteps         string   `json:"next_steps"`
	CanProceed        bool     `json:"can_proceed"`
	CelebrationWorthy bool     `json:"celebration_worthy"`
	Source            Source   `json:"source"`
}

// Passed reports whether the grade clears ProceedGrade.
func Passed(grade int) bool {
	return grade >= ProceedGrade
}
