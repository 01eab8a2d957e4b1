// Package tutor runs the content and analysis pipelines and binds them to
// per-learner session state.
package tutor

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/scholar/internal/generation"
	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/prompts"
	"github.com/abhisek/scholar/internal/references"
	"github.com/abhisek/scholar/internal/sections"
)

// Pipeline turns requests into lessons and critiques. It holds no
// per-learner state and is safe for concurrent use.
type Pipeline struct {
	gen *generation.Client
	now func() time.Time
}

// NewPipeline creates a Pipeline over a generation client.
func NewPipeline(gen *generation.Client) *Pipeline {
	return &Pipeline{gen: gen, now: time.Now}
}

// GenerateContent produces a lesson for the given level, subject and topic.
// Provider failures do not surface here; they yield a placeholder lesson
// with Source set to fallback.
func (p *Pipeline) GenerateContent(ctx context.Context, level, subject, topic string) (*lesson.Content, error) {
	prompt, err := prompts.BuildContentPrompt(level, subject, topic)
	if err != nil {
		return nil, fmt.Errorf("build content prompt: %w", err)
	}

	res := p.gen.Generate(ctx, generation.PurposeLesson, prompt)
	parsed := sections.ParseContent(res.Text)

	return &lesson.Content{
		Body:          parsed.Body,
		Structure:     parsed.Structure,
		References:    references.Build(level, subject, topic),
		KeyPoints:     sections.KeyPoints(res.Text),
		WordCount:     sections.WordCount(res.Text),
		AcademicLevel: level,
		Subject:       subject,
		Topic:         topic,
		Source:        res.Source,
		GeneratedAt:   p.now().UTC(),
	}, nil
}

// AnalyzeResponse grades a learner response against content. content may
// be nil, in which case the prompt omits key points and sections.
func (p *Pipeline) AnalyzeResponse(ctx context.Context, response string, content *lesson.Content, level, subject, topic string) (*lesson.Analysis, error) {
	prompt, err := prompts.BuildAnalysisPrompt(response, content, level, subject, topic)
	if err != nil {
		return nil, fmt.Errorf("build analysis prompt: %w", err)
	}

	res := p.gen.Generate(ctx, generation.PurposeAnalysis, prompt)
	analysis := sections.ParseAnalysis(res.Text)
	analysis.Source = res.Source
	return &analysis, nil
}
