package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests and offline use.
// Queued responses are served first, in order. Once the queue is empty the
// Respond hook answers, and without one every call fails with
// ErrProviderUnavailable. All requests are recorded in Calls.
type MockProvider struct {
	// Model is reported by ModelID and Response.Model. Default "mock".
	Model string
	// Respond answers requests after the queue runs dry.
	Respond func(Request) MockResponse

	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewEchoProvider returns a MockProvider that answers every structured
// request by copying the last user message into each required string
// property. The "mock" provider setting uses it so the CLI works offline.
func NewEchoProvider() *MockProvider {
	return &MockProvider{Model: "echo", Respond: echoResponse}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	var (
		next MockResponse
		ok   bool
	)
	if len(m.queue) > 0 {
		next, m.queue, ok = m.queue[0], m.queue[1:], true
	}
	respond := m.Respond
	m.mu.Unlock()

	switch {
	case ok:
	case respond != nil:
		next = respond(req)
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      m.ModelID(),
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	if m.Model == "" {
		return "mock"
	}
	return m.Model
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func echoResponse(req Request) MockResponse {
	var text string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			text = req.Messages[i].Content
			break
		}
	}

	var out any = text
	if req.Schema != nil {
		obj := map[string]any{}
		required, _ := req.Schema.Definition["required"].([]any)
		props, _ := req.Schema.Definition["properties"].(map[string]any)
		for _, r := range required {
			name, _ := r.(string)
			if p, _ := props[name].(map[string]any); p["type"] == "string" {
				obj[name] = text
			}
		}
		out = obj
	}

	b, err := json.Marshal(out)
	if err != nil {
		return MockResponse{Err: &ErrInvalidResponse{Err: err}}
	}
	tokens := len(text) / 4
	return MockResponse{
		Content: b,
		Usage:   Usage{InputTokens: tokens, OutputTokens: tokens, TotalTokens: 2 * tokens},
	}
}
