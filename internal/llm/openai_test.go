package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatServer answers chat completions with content and captures the
// decoded request body and Authorization header.
func chatServer(t *testing.T, content string, got *map[string]any, auth *string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			if err := json.NewDecoder(r.Body).Decode(got); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "llama3-8b-8192",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     40,
				"completion_tokens": 25,
				"total_tokens":      65,
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var body map[string]any
	var auth string
	server := chatServer(t, "# Photosynthesis\n\n## 1. Introduction", &body, &auth)

	p := newOpenAICompatible("test-key", server.URL+"/v1", "llama3-8b-8192")
	resp, err := p.Generate(context.Background(), UserPrompt("Teach photosynthesis.", 4000, 0.8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "# Photosynthesis\n\n## 1. Introduction" {
		t.Fatalf("text not passed through verbatim: %q", resp.Text)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if auth != "Bearer test-key" {
		t.Fatalf("expected bearer auth, got %q", auth)
	}
	if body["model"] != "llama3-8b-8192" {
		t.Fatalf("model = %v", body["model"])
	}
	if body["max_tokens"] != float64(4000) {
		t.Fatalf("max_tokens = %v", body["max_tokens"])
	}
	temp, _ := body["temperature"].(float64)
	if temp < 0.79 || temp > 0.81 {
		t.Fatalf("temperature = %v", body["temperature"])
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("expected one user message, got %d", len(msgs))
	}
	if m := msgs[0].(map[string]any); m["role"] != "user" || m["content"] != "Teach photosynthesis." {
		t.Fatalf("unexpected message: %v", m)
	}
}

func TestOpenAIProvider_SystemPromptFirst(t *testing.T) {
	var body map[string]any
	server := chatServer(t, "ok", &body, nil)

	p := newOpenAICompatible("k", server.URL+"/v1", "m")
	_, err := p.Generate(context.Background(), Request{
		System:    "You are a tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msgs := body["messages"].([]any)
	if len(msgs) != 2 || msgs[0].(map[string]any)["role"] != "system" {
		t.Fatalf("expected system message first, got %v", msgs)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "choices": []any{}})
	}))
	t.Cleanup(server.Close)

	p := newOpenAICompatible("k", server.URL+"/v1", "m")
	_, err := p.Generate(context.Background(), UserPrompt("hi", 10, 0.8))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}))
	t.Cleanup(server.Close)

	p := newOpenAICompatible("k", server.URL+"/v1", "m")
	_, err := p.Generate(context.Background(), UserPrompt("test", 100, 0.8))
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	}))
	t.Cleanup(server.Close)

	p := newOpenAICompatible("k", server.URL+"/v1", "m")
	_, err := p.Generate(context.Background(), UserPrompt("test", 100, 0.8))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestGroqProvider_Defaults(t *testing.T) {
	p, err := NewGroqProvider(GroqConfig{APIKey: "gsk_test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "llama3-8b-8192" {
		t.Fatalf("expected default model, got %q", p.ModelID())
	}
	if p.Client() == nil {
		t.Fatal("expected shared client")
	}
}

func TestGroqProvider_RequiresKey(t *testing.T) {
	if _, err := NewGroqProvider(GroqConfig{}); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestGroqProvider_BaseURLOverride(t *testing.T) {
	var body map[string]any
	server := chatServer(t, "hello", &body, nil)

	p, err := NewGroqProvider(GroqConfig{APIKey: "k", BaseURL: server.URL + "/v1", Model: "llama-3.1-8b-instant"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Generate(context.Background(), UserPrompt("hi", 10, 0.8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello" || body["model"] != "llama-3.1-8b-instant" {
		t.Fatalf("unexpected round trip: %q %v", resp.Text, body["model"])
	}
}
