package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "auto", "anthropic", "openai", "gemini", "openrouter", "mock", "none"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku". "fast" and "quality" also work.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string // Optional. Override for proxies and tests.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// ProviderAuto picks the provider from well-known API key variables.
const ProviderAuto = "auto"

// ProviderNone disables translation.
const ProviderNone = "none"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderAuto,
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// keyed lists the API-key providers in auto-discovery priority order.
var keyed = []struct {
	name string
	env  string
	key  func(*Config) *string
}{
	{"gemini", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"openai", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// DiscoverConfig picks the first provider, in the order Gemini, OpenAI,
// Anthropic, OpenRouter, that has a key: a key already in base wins over
// the vendor's standard environment variable. Models and retry settings
// from base are kept. Returns (base, false) if no key is found.
func DiscoverConfig(base Config) (Config, bool) {
	for _, k := range keyed {
		cfg := base
		if *k.key(&cfg) != "" {
			cfg.Provider = k.name
			return cfg, true
		}
	}
	for _, k := range keyed {
		if v := os.Getenv(k.env); v != "" {
			cfg := base
			cfg.Provider = k.name
			*k.key(&cfg) = v
			return cfg, true
		}
	}
	return base, false
}

// Resolve turns an "auto" provider into a concrete one.
// The second result is false when no provider is usable.
func (c Config) Resolve() (Config, bool) {
	switch c.Provider {
	case "", ProviderAuto:
		return DiscoverConfig(c)
	case ProviderNone:
		return c, false
	}
	return c, true
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	for _, k := range keyed {
		if k.name != c.Provider {
			continue
		}
		if *k.key(&c) == "" {
			return fmt.Errorf("CLIPVOCAB_LLM_%s_API_KEY is required for the %s provider",
				strings.ToUpper(k.name), k.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
