// Package translate turns captured words and sentences into the learner's
// target language through an LLM provider, with caching and rate limiting.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abhisek/clipvocab/internal/cache"
	"github.com/abhisek/clipvocab/internal/llm"
)

// Purpose labels translation calls in the llm_requests table.
const Purpose = "translate"

const (
	DefaultRequestsPerMinute = 30
	DefaultTimeout           = 30 * time.Second
	maxTokens                = 512
	cacheNamespace           = "tr"
)

var (
	ErrEmptyText = errors.New("nothing to translate")
	ErrNoTarget  = errors.New("target language is required")
)

// Options tunes a Translator. Zero values pick defaults.
type Options struct {
	Cache             cache.Cache
	CacheTTL          time.Duration
	RequestsPerMinute int
	Timeout           time.Duration
	Logger            *slog.Logger
}

// Translator implements vocab.Translator.
type Translator struct {
	provider llm.Provider
	cache    cache.Cache
	ttl      time.Duration
	limiter  *rate.Limiter
	timeout  time.Duration
	logger   *slog.Logger
}

var translationSchema = &llm.Schema{
	Name:        "translation",
	Description: "A translation of the input text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translation": map[string]any{
				"type":        "string",
				"description": "The input text translated into the target language",
			},
		},
		"required":             []any{"translation"},
		"additionalProperties": false,
	},
}

type translationOutput struct {
	Translation string `json:"translation"`
}

// New builds a Translator over provider.
func New(provider llm.Provider, opts Options) *Translator {
	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = DefaultRequestsPerMinute
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewMemory(cache.DefaultCapacity)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Translator{
		provider: provider,
		cache:    c,
		ttl:      opts.CacheTTL,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		timeout:  timeout,
		logger:   logger.With("component", "translate"),
	}
}

// Translate returns text rendered in the target language (an ISO 639-1
// code such as "es"). Results are cached by normalized text and target.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	text = strings.TrimSpace(text)
	target = strings.ToLower(strings.TrimSpace(target))
	if text == "" {
		return "", ErrEmptyText
	}
	if target == "" {
		return "", ErrNoTarget
	}

	key := cache.Key(cacheNamespace, target, strings.ToLower(text))
	if v, ok := t.cache.Get(ctx, key); ok {
		return string(v), nil
	}
	t.logger.DebugContext(ctx, "translation cache miss", "target", target, "chars", len(text))

	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, Purpose), t.timeout)
	defer cancel()

	resp, err := t.provider.Generate(ctx, buildRequest(text, target))
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	out, err := llm.Decode[translationOutput](resp)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	translation := strings.TrimSpace(out.Translation)
	if translation == "" {
		return "", fmt.Errorf("translate: %w", &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     errors.New("empty translation"),
		})
	}

	if err := t.cache.Set(ctx, key, []byte(translation), t.ttl); err != nil {
		t.logger.WarnContext(ctx, "failed to cache translation", "error", err)
	}
	return translation, nil
}

func buildRequest(text, target string) llm.Request {
	return llm.Request{
		System: "You translate short snippets of video dialogue for language learners. " +
			"Keep the register and meaning of the original. Reply with the translation only.",
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: fmt.Sprintf("Target language (ISO 639-1): %s\nText: %s", target, text),
		}},
		Schema:    translationSchema,
		MaxTokens: maxTokens,
	}
}
