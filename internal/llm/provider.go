package llm

import "context"

// Provider is a text-generation backend. Callers hand it a Request and get
// the model's free-text reply back.
type Provider interface {
	// Generate sends a single request. Implementations make exactly one
	// attempt; callers decide what to do on failure.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is an optional system prompt.
	System string

	// Messages is the conversation. Lesson and analysis calls send one
	// user message.
	Messages []Message

	// MaxTokens bounds the reply length.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request.
func UserPrompt(prompt string, maxTokens int, temperature float64) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// Response holds the model's output.
type Response struct {
	// Text is the first choice's message content, unmodified.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
