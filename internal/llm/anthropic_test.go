package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5"}
}

func anthropicMessage(text, stop string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"model":       "claude-haiku-4-5",
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func anthropicFailure(status int, retryAfter string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if retryAfter != "" {
			w.Header().Set("Retry-After", retryAfter)
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": http.StatusText(status)},
		})
	}
}

func translateRequest(schema *Schema) Request {
	return Request{
		System:    "You translate vocabulary for language learners.",
		Messages:  []Message{{Role: RoleUser, Content: "Translate to es: the house"}},
		Schema:    schema,
		MaxTokens: 256,
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicMessage("```json\n{\"translation\":\"la casa\"}\n```", "end_turn"))

	resp, err := p.Generate(context.Background(), translateRequest(translationTestSchema()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"translation":"la casa"}` {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	if resp.Model != "claude-haiku-4-5" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestAnthropicProvider_StopReasons(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicMessage(`{"translation":"la ca`, "max_tokens"))
	_, err := p.Generate(context.Background(), translateRequest(translationTestSchema()))
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
	if string(maxTok.Content) != `{"translation":"la ca` {
		t.Errorf("truncated content = %s", maxTok.Content)
	}

	p = newTestAnthropicProvider(t, anthropicMessage("", "refusal"))
	_, err = p.Generate(context.Background(), translateRequest(nil))
	var refused *ErrRefused
	if !errors.As(err, &refused) {
		t.Fatalf("expected ErrRefused, got %T (%v)", err, err)
	}
	if retryable(err) {
		t.Error("a refusal should not be retried")
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		retryAfter string
		check      func(t *testing.T, err error)
	}{
		{
			name:       "rate limit with retry-after",
			status:     http.StatusTooManyRequests,
			retryAfter: "7",
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				if !errors.As(err, &rl) {
					t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
				}
				if rl.RetryAfter != 7*time.Second {
					t.Errorf("RetryAfter = %s", rl.RetryAfter)
				}
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var unavail *ErrProviderUnavailable
				if !errors.As(err, &unavail) {
					t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
				}
			},
		},
		{
			name:   "bad key",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var unauth *ErrUnauthorized
				if !errors.As(err, &unauth) {
					t.Fatalf("expected ErrUnauthorized, got %T (%v)", err, err)
				}
				if retryable(err) {
					t.Error("auth failures should not be retried")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, anthropicFailure(tt.status, tt.retryAfter))
			_, err := p.Generate(context.Background(), translateRequest(nil))
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"fast", "claude-haiku-4-5"},
		{"quality", "claude-sonnet-4-5"},
		{"claude-haiku", "claude-haiku-4-5"},
		{"claude-sonnet-4-5-20250929", "claude-sonnet-4-5-20250929"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "fast"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "claude-haiku-4-5" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
	if _, err := NewAnthropicProvider(AnthropicConfig{}); err == nil {
		t.Error("expected missing key error")
	}
}
