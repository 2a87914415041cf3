package llm

import "errors"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	openRouterAppTitle       = "clipvocab"
	openRouterAppURL         = "https://github.com/abhisek/clipvocab"
)

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter. Model
// IDs are vendor-qualified ("google/gemini-2.0-flash-exp") and passed
// through without alias mapping.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Requests carry OpenRouter's app attribution headers.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}

	inner, err := newOpenAICompatible(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	}, map[string]string{
		"HTTP-Referer": openRouterAppURL,
		"X-Title":      openRouterAppTitle,
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
