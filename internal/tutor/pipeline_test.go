package tutor

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/scholar/internal/generation"
	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/llm"
)

const sampleLesson = `# Photosynthesis

## 1. Introduction and Overview
Plants turn light into chemical energy.

## 2. Fundamental Concepts
- Chlorophyll absorbs light
- Water is split

### 2.1 Key Definitions
Words.

### 2.2 Historical Context
More words.

## 3. Detailed Analysis
### 3.1 Light reactions
Text.
`

const sampleAnalysis = `## STRENGTHS
- Clear definition of chlorophyll

## FALSE POINTS
- Claimed oxygen comes from CO2

## MISSING POINTS
- Calvin cycle

## EXAMPLES QUALITY
Few examples.

## AREAS LACKING
- Depth

## IMPROVEMENTS
- Describe the Calvin cycle

## GRADE
Grade: 6/10

## GRADE EXPLANATION
Partially correct.

## DETAILED FEEDBACK
Good start.

## NEXT STEPS
Review section 3.
`

func newTestPipeline(responses ...llm.MockResponse) (*Pipeline, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	p := NewPipeline(generation.NewClient(mock, nil, generation.Config{}))
	p.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	return p, mock
}

func TestGenerateContent_Live(t *testing.T) {
	p, mock := newTestPipeline(llm.MockResponse{Text: sampleLesson})

	c, err := p.GenerateContent(t.Context(), "high_school", "Biology", "Photosynthesis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Body != sampleLesson {
		t.Fatal("body must be the unmodified completion")
	}
	if c.Source != lesson.SourceLive {
		t.Fatalf("source = %q", c.Source)
	}
	if len(c.Structure) != 3 || len(c.Structure[1].Subsections) != 2 {
		t.Fatalf("unexpected structure: %+v", c.Structure)
	}
	want := []string{"2. Fundamental Concepts", "Chlorophyll absorbs light", "Water is split", "3. Detailed Analysis"}
	if strings.Join(c.KeyPoints, "|") != strings.Join(want, "|") {
		t.Fatalf("key points = %v", c.KeyPoints)
	}
	if c.WordCount != len(strings.Fields(sampleLesson)) {
		t.Fatalf("word count = %d", c.WordCount)
	}
	// high_school base table (3) plus the Biology entry.
	if len(c.References) != 4 {
		t.Fatalf("got %d references", len(c.References))
	}
	if c.Topic != "Photosynthesis" || c.Subject != "Biology" || c.AcademicLevel != "high_school" {
		t.Fatalf("request fields not echoed: %+v", c)
	}
	if !c.GeneratedAt.Equal(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("generated_at = %v", c.GeneratedAt)
	}

	req, _ := mock.LastCall()
	if req.MaxTokens != generation.LessonMaxTokens || !strings.Contains(req.Messages[0].Content, "Photosynthesis") {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestGenerateContent_FallbackStillComplete(t *testing.T) {
	p, _ := newTestPipeline() // empty queue: provider fails

	c, err := p.GenerateContent(t.Context(), "graduate", "Physics", "Entropy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Source != lesson.SourceFallback {
		t.Fatalf("source = %q", c.Source)
	}
	if c.Body != generation.Placeholder(generation.PurposeLesson) {
		t.Fatal("expected placeholder body")
	}
	if len(c.Structure) != 7 || len(c.References) == 0 {
		t.Fatalf("fallback lesson should still be fully populated: %+v", c)
	}
}

func TestAnalyzeResponse_Live(t *testing.T) {
	p, mock := newTestPipeline(llm.MockResponse{Text: sampleAnalysis})
	content := &lesson.Content{KeyPoints: []string{"Calvin cycle"}, Structure: []lesson.Section{{Title: "3. Detailed Analysis"}}}

	a, err := p.AnalyzeResponse(t.Context(), "Plants eat light.", content, "high_school", "Biology", "Photosynthesis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Grade != 6 || a.CanProceed || a.Source != lesson.SourceLive {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	if len(a.FalsePoints) != 1 || a.FalsePoints[0] != "Claimed oxygen comes from CO2" {
		t.Fatalf("false points = %v", a.FalsePoints)
	}

	req, _ := mock.LastCall()
	prompt := req.Messages[0].Content
	if req.MaxTokens != generation.AnalysisMaxTokens {
		t.Fatalf("max tokens = %d", req.MaxTokens)
	}
	if !strings.Contains(prompt, "Plants eat light.") || !strings.Contains(prompt, "Calvin cycle") {
		t.Fatal("prompt missing response or key points")
	}
}

func TestAnalyzeResponse_Fallback(t *testing.T) {
	p, _ := newTestPipeline(llm.MockResponse{Text: ""})

	a, err := p.AnalyzeResponse(t.Context(), "anything", nil, "undergraduate", "History", "Rome")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Source != lesson.SourceFallback || a.Grade != 5 {
		t.Fatalf("unexpected analysis: %+v", a)
	}
}
