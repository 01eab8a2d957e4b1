// Package transcribe converts spoken learner responses to text through an
// OpenAI-compatible audio transcription endpoint.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is Groq's hosted Whisper model.
const DefaultModel = "whisper-large-v3"

// ErrUnavailable is returned when no transcription backend is configured.
var ErrUnavailable = errors.New("voice transcription is not available")

// ErrEmptyAudio is returned for a zero-length upload.
var ErrEmptyAudio = errors.New("no audio provided")

// Status describes the transcription capability to clients.
type Status struct {
	Available bool   `json:"available"`
	Model     string `json:"model,omitempty"`
	Message   string `json:"message"`
}

// Transcriber turns an audio stream into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
	Status() Status
}

// WhisperTranscriber calls the audio transcription endpoint of an
// OpenAI-compatible API.
type WhisperTranscriber struct {
	client *openai.Client
	model  string
}

// NewWhisperTranscriber creates a transcriber. An empty model uses
// DefaultModel.
func NewWhisperTranscriber(client *openai.Client, model string) *WhisperTranscriber {
	if model == "" {
		model = DefaultModel
	}
	return &WhisperTranscriber{client: client, model: model}
}

// NewWhisperTranscriberFromKey builds its own client for baseURL.
func NewWhisperTranscriberFromKey(apiKey, baseURL, model string) *WhisperTranscriber {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewWhisperTranscriber(openai.NewClientWithConfig(cfg), model)
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if audio == nil {
		return "", ErrEmptyAudio
	}
	if filename == "" {
		filename = "recording.webm"
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filename,
		Reader:   audio,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func (w *WhisperTranscriber) Status() Status {
	return Status{
		Available: true,
		Model:     w.model,
		Message:   "Voice input is available",
	}
}

// Unavailable is the Transcriber used when no credential is configured.
type Unavailable struct{}

func (Unavailable) Transcribe(context.Context, string, io.Reader) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Status() Status {
	return Status{
		Available: false,
		Message:   "Voice input requires GROQ_API_KEY; type your response instead",
	}
}
