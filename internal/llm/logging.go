package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/clipvocab/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// llm_requests table and on the structured log.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.LLMEventRepo
	logger    *slog.Logger
}

// WithLogging wraps a Provider with event logging. repo may be nil, in
// which case requests are only written to the logger.
func WithLogging(p Provider, providerName string, repo store.LLMEventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{
		inner:     p,
		provider:  providerName,
		eventRepo: repo,
		logger:    logger.With("component", "llm"),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	attrs := []any{
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
		"latency_ms", data.LatencyMs,
	}
	if cost, ok := EstimateCost(data.Model, data.InputTokens, data.OutputTokens); ok {
		attrs = append(attrs, "cost_usd", cost)
	}
	if err != nil {
		l.logger.WarnContext(ctx, "llm request failed", append(attrs, "error", err)...)
	} else {
		l.logger.DebugContext(ctx, "llm request", attrs...)
	}

	// A failed write to the event table never fails the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.WarnContext(ctx, "failed to record llm request", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
