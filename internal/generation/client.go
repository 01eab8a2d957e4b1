// Package generation makes the single text-generation call behind each
// lesson and analysis, substituting fixed placeholder text when the
// provider is missing or fails.
package generation

import (
	"context"
	"strings"
	"time"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/llm"
	"github.com/abhisek/scholar/internal/logger"
)

const (
	// DefaultTemperature is the sampling temperature for both purposes.
	DefaultTemperature = 0.8

	// LessonMaxTokens bounds a generated lesson.
	LessonMaxTokens = 4000

	// AnalysisMaxTokens bounds a generated critique.
	AnalysisMaxTokens = 2000
)

// Purpose selects token budget, placeholder text and the event log label.
type Purpose string

const (
	PurposeLesson   Purpose = "lesson"
	PurposeAnalysis Purpose = "analysis"
)

// MaxTokens returns the token budget for p.
func (p Purpose) MaxTokens() int {
	if p == PurposeAnalysis {
		return AnalysisMaxTokens
	}
	return LessonMaxTokens
}

// Result is the outcome of one generation call. Text is never empty.
type Result struct {
	Text   string
	Source lesson.Source

	// Reason says why the placeholder was used. Empty for live results.
	Reason string
}

// Live reports whether the text came from the provider.
func (r Result) Live() bool {
	return r.Source == lesson.SourceLive
}

// Config tunes the client.
type Config struct {
	// Timeout bounds one provider call. Zero leaves it to the caller's context.
	Timeout time.Duration
}

// Client wraps an llm.Provider. A nil provider is valid and always yields
// placeholder text.
type Client struct {
	provider llm.Provider
	log      *logger.Logger
	cfg      Config
}

// NewClient creates a generation client.
func NewClient(provider llm.Provider, log *logger.Logger, cfg Config) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{provider: provider, log: log, cfg: cfg}
}

// HasProvider reports whether a provider is configured.
func (c *Client) HasProvider() bool {
	return c.provider != nil
}

// Generate sends prompt as a single user message. It makes exactly one
// attempt and never returns an error: any failure or an empty completion
// is replaced by the placeholder for purpose.
func (c *Client) Generate(ctx context.Context, purpose Purpose, prompt string) Result {
	if c.provider == nil {
		return c.fallback(purpose, "no provider configured")
	}

	ctx = llm.WithPurpose(ctx, string(purpose))
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, llm.UserPrompt(prompt, purpose.MaxTokens(), DefaultTemperature))
	if err != nil {
		return c.fallback(purpose, err.Error())
	}
	if strings.TrimSpace(resp.Text) == "" {
		return c.fallback(purpose, "empty completion")
	}

	return Result{Text: resp.Text, Source: lesson.SourceLive}
}

func (c *Client) fallback(purpose Purpose, reason string) Result {
	c.log.Warn("using placeholder text", "purpose", string(purpose), "reason", reason)
	return Result{
		Text:   Placeholder(purpose),
		Source: lesson.SourceFallback,
		Reason: reason,
	}
}
