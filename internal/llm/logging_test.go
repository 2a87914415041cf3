package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/clipvocab/internal/store"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestRecord, error) {
	return nil, nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"translation":"el perro"}`),
		Usage:   Usage{InputTokens: 30, OutputTokens: 8, TotalTokens: 38},
	})
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := WithLogging(mock, "mock", repo, logger)
	ctx := WithPurpose(context.Background(), "translate")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "mock" || e.Model != "mock" || e.Purpose != "translate" {
		t.Errorf("unexpected event identity: %+v", e)
	}
	if !e.Success || e.ErrorMessage != "" {
		t.Errorf("expected success, got %+v", e)
	}
	if e.InputTokens != 30 || e.OutputTokens != 8 {
		t.Errorf("tokens = %d/%d, want 30/8", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(buf.String(), "purpose=translate") {
		t.Errorf("log output missing purpose: %s", buf.String())
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p := WithLogging(mock, "mock", repo, logger)
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	if repo.events[0].Success {
		t.Error("expected failed event")
	}
	if repo.events[0].ErrorMessage != "boom" {
		t.Errorf("error message = %q, want %q", repo.events[0].ErrorMessage, "boom")
	}
	if repo.events[0].Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", repo.events[0].Purpose)
	}
	if !strings.Contains(buf.String(), "llm request failed") {
		t.Errorf("expected warning in log, got: %s", buf.String())
	}
}

func TestLogging_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	p := WithLogging(mock, "mock", repo, logger)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("repo failure leaked into request: %v", err)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q, want mock", p.ModelID())
	}
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	if !ok {
		t.Fatal("expected known model")
	}
	if math.Abs(cost-0.75) > 1e-9 {
		t.Errorf("cost = %f, want 0.75", cost)
	}
	if _, ok := EstimateCost("mock", 10, 10); ok {
		t.Error("mock should have no price")
	}
}
