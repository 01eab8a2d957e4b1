package llm

import "fmt"

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama3-8b-8192"
)

// GroqProvider targets Groq's OpenAI-compatible API, so the OpenAI SDK is
// reused with a different base URL.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider for the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultGroqModel
	}

	return &GroqProvider{OpenAIProvider: newOpenAICompatible(cfg.APIKey, baseURL, model)}, nil
}
