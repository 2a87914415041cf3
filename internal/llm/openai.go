package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"fast":    "gpt-4.1-nano",
	"quality": "gpt-4.1-mini",
}

// OpenAIProvider implements Provider with the chat completions API. It also
// drives OpenRouter and other OpenAI-compatible gateways via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider. The "fast" and "quality"
// aliases are mapped to OpenAI model IDs.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	cfg.Model = resolveModel(cfg.Model, openaiModels)
	return newOpenAICompatible(cfg, nil)
}

// newOpenAICompatible builds the client with the model ID used as given.
// headers are added to every request.
func newOpenAICompatible(cfg OpenAIConfig, headers map[string]string) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &hintingDoer{inner: config.HTTPClient, headers: headers}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            openaiMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Schema:      json.RawMessage(def),
				Strict:      true,
			},
		}
	}

	hint := &retryHint{}
	resp, err := p.client.CreateChatCompletion(context.WithValue(ctx, retryHintKey{}, hint), chatReq)
	if err != nil {
		return nil, openaiError(err, hint.wait)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no choices in chat completion")}
	}

	choice := resp.Choices[0]
	content := json.RawMessage(choice.Message.Content)
	stop, detail := openaiStop(choice.FinishReason), "content filter"
	if choice.Message.Refusal != "" {
		stop, detail = StopRefused, choice.Message.Refusal
	}
	if err := stopError(stop, content, detail); err != nil {
		return nil, err
	}
	if content, err = validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: stop,
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func openaiMessages(req Request) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func openaiStop(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonLength:
		return StopMaxTokens
	case openai.FinishReasonContentFilter:
		return StopRefused
	}
	return StopEnd
}

func openaiError(err error, wait time.Duration) error {
	var (
		apiErr *openai.APIError
		reqErr *openai.RequestError
	)
	switch {
	case errors.As(err, &apiErr):
		return statusError(apiErr.HTTPStatusCode, wait, fmt.Errorf("openai: %w", err))
	case errors.As(err, &reqErr):
		return statusError(reqErr.HTTPStatusCode, wait, fmt.Errorf("openai: %w", err))
	}
	return &ErrProviderUnavailable{Err: err}
}

// go-openai drops response headers from its errors. hintingDoer records
// Retry-After on the per-call retryHint carried by the request context,
// and sets any fixed headers the gateway wants.
type hintingDoer struct {
	inner   openai.HTTPDoer
	headers map[string]string
}

type retryHintKey struct{}

type retryHint struct {
	wait time.Duration
}

func (d *hintingDoer) Do(r *http.Request) (*http.Response, error) {
	for k, v := range d.headers {
		r.Header.Set(k, v)
	}
	resp, err := d.inner.Do(r)
	if err != nil || resp.StatusCode != http.StatusTooManyRequests {
		return resp, err
	}
	if hint, ok := r.Context().Value(retryHintKey{}).(*retryHint); ok {
		hint.wait = parseRetryAfter(resp.Header, time.Now())
	}
	return resp, nil
}
