package llm

import (
	"context"
	"net/http"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OpenRouterConfig
		model   string
		wantErr bool
	}{
		{name: "vendor model", cfg: OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp"}, model: "google/gemini-2.0-flash-exp"},
		{name: "aliases are not mapped", cfg: OpenRouterConfig{APIKey: "sk-or-test", Model: "fast"}, model: "fast"},
		{name: "custom base URL", cfg: OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku", BaseURL: "https://proxy.example/v1"}, model: "anthropic/claude-3-haiku"},
		{name: "missing key", cfg: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != tt.model {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.model)
			}
		})
	}
}

func TestOpenRouterProvider_SendsAttributionHeaders(t *testing.T) {
	var got http.Header
	reply := chatCompletion(assistant(`{"translation":"hola"}`), "stop")
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		reply(w, r)
	})

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.0-flash-exp",
		BaseURL: server + "/api/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(context.Background(), translateRequest(translationTestSchema())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Get("X-Title") != "clipvocab" {
		t.Errorf("X-Title = %q", got.Get("X-Title"))
	}
	if got.Get("HTTP-Referer") == "" {
		t.Error("missing HTTP-Referer")
	}
	if got.Get("Authorization") != "Bearer sk-or-test" {
		t.Errorf("Authorization = %q", got.Get("Authorization"))
	}
}
