package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/scholar/internal/logger"
	"github.com/abhisek/scholar/internal/store"
)

// ErrNoCredential reports that the selected provider has no API key. Callers
// treat it as "run in fallback mode" rather than a startup failure.
var ErrNoCredential = errors.New("no LLM credential configured")

var knownProviders = map[string]bool{
	"groq": true, "openai": true, "anthropic": true, "gemini": true, "mock": true,
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		if knownProviders[cfg.Provider] {
			return nil, fmt.Errorf("%w: %v", ErrNoCredential, err)
		}
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "groq":
		base, err = NewGroqProvider(cfg.Groq)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → logging → base
	return WithLogging(base, cfg.Provider, eventRepo, log), nil
}
