package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider generates a completion for a Request. Translation is the only
// caller today, but nothing here is specific to it.
type Provider interface {
	// Generate returns the model output. When req.Schema is set the
	// Content is a JSON value that validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the resolved model the provider sends requests to.
	ModelID() string
}

// Request is a single completion call.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured output. Providers use their native JSON
	// mode and the result is validated locally as well. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema document plus the name providers label it with.
// Name also keys the compiled validator cache, so keep it stable.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	// Content is the validated JSON when a Schema was requested, otherwise
	// the raw text.
	Content json.RawMessage
	Usage   Usage

	// Model is what the provider reports served the call, which may be a
	// dated snapshot of ModelID.
	Model string

	// StopReason is one of the Stop* constants.
	StopReason string
}

// Normalized stop reasons. Providers return ErrMaxTokensExceeded or
// ErrRefused instead of a Response for the last two.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopRefused   = "refused"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Decode unmarshals resp.Content into T.
func Decode[T any](resp *Response) (T, error) {
	var out T
	if resp == nil {
		return out, &ErrInvalidResponse{Err: errors.New("nil response")}
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return out, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return out, nil
}

// stopError is the error for a stop reason that yields no usable content.
func stopError(stop string, content json.RawMessage, detail string) error {
	switch stop {
	case StopMaxTokens:
		return &ErrMaxTokensExceeded{Content: content}
	case StopRefused:
		if detail == "" {
			detail = "no reason given"
		}
		return &ErrRefused{Reason: detail}
	}
	return nil
}

// resolveModel maps an alias to a provider model ID. Unknown names are
// taken as model IDs.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

type purposeKey struct{}

// WithPurpose tags ctx with the consumer label recorded in llm_requests.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
