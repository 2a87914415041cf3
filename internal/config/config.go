// Package config loads clipvocab settings from defaults, an optional .env
// file, CLIPVOCAB_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/clipvocab/internal/cache"
	"github.com/abhisek/clipvocab/internal/llm"
	"github.com/abhisek/clipvocab/internal/store"
	"github.com/abhisek/clipvocab/internal/textmatch"
	"github.com/abhisek/clipvocab/internal/translate"
	"github.com/abhisek/clipvocab/internal/vocab"
)

// EnvPrefix is prepended to every environment variable, with dots in
// keys replaced by underscores: db.dsn is read from CLIPVOCAB_DB_DSN.
const EnvPrefix = "CLIPVOCAB"

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Config is the resolved application configuration.
type Config struct {
	DB        DBConfig
	Grading   GradingConfig
	Server    ServerConfig
	Cache     CacheConfig
	Translate TranslateConfig
	Log       LogConfig
	LLM       llm.Config
}

type DBConfig struct {
	Driver string
	// DSN is a file path for sqlite and a connection URL for postgres.
	// Empty means the default sqlite path.
	DSN string
}

type GradingConfig struct {
	Threshold        float64
	Mode             string
	Language         string
	BatchConcurrency int
}

type ServerConfig struct {
	Addr string
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
	Capacity int
}

type TranslateConfig struct {
	Target            string
	RequestsPerMinute int
}

type LogConfig struct {
	Level  string
	Format string
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":         "db.dsn",
	"db-driver":  "db.driver",
	"threshold":  "grading.threshold",
	"mode":       "grading.mode",
	"target":     "translate.target",
	"addr":       "server.addr",
	"log-level":  "log.level",
	"log-format": "log.format",
	"provider":   "llm.provider",
}

func setDefaults(v *viper.Viper) {
	lc := llm.DefaultConfig()

	defaults := map[string]any{
		"db.driver":                     store.DriverSQLite,
		"db.dsn":                        "",
		"grading.threshold":             textmatch.DefaultThreshold,
		"grading.mode":                  string(vocab.ModeStrict),
		"grading.language":              vocab.DefaultLanguage,
		"grading.batch_concurrency":     vocab.DefaultBatchConcurrency,
		"server.addr":                   ":8080",
		"cache.redis_url":               "",
		"cache.ttl":                     cache.DefaultTTL,
		"cache.capacity":                cache.DefaultCapacity,
		"translate.target":              "es",
		"translate.requests_per_minute": translate.DefaultRequestsPerMinute,
		"log.level":                     "info",
		"log.format":                    "text",

		"llm.provider":            lc.Provider,
		"llm.timeout":             lc.Timeout,
		"llm.retry.max_attempts":  lc.Retry.MaxAttempts,
		"llm.anthropic.api_key":   "",
		"llm.anthropic.model":     lc.Anthropic.Model,
		"llm.openai.api_key":      "",
		"llm.openai.model":        lc.OpenAI.Model,
		"llm.openai.base_url":     "",
		"llm.gemini.api_key":      "",
		"llm.gemini.model":        lc.Gemini.Model,
		"llm.gemini.base_url":     "",
		"llm.openrouter.api_key":  "",
		"llm.openrouter.model":    lc.OpenRouter.Model,
		"llm.openrouter.base_url": "",
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// Load resolves the configuration. envFile is loaded into the process
// environment first when it exists (existing variables win). flags may be
// nil; only flags the user actually set override lower layers.
func Load(envFile string, flags *pflag.FlagSet) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, errors.Wrapf(err, "load %s", envFile)
			}
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag --%s", name)
				}
			}
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	lc := llm.DefaultConfig()
	lc.Provider = strings.ToLower(v.GetString("llm.provider"))
	lc.Timeout = v.GetDuration("llm.timeout")
	lc.Retry.MaxAttempts = v.GetInt("llm.retry.max_attempts")
	lc.Anthropic = llm.AnthropicConfig{
		APIKey: v.GetString("llm.anthropic.api_key"),
		Model:  v.GetString("llm.anthropic.model"),
	}
	lc.OpenAI = llm.OpenAIConfig{
		APIKey:  v.GetString("llm.openai.api_key"),
		Model:   v.GetString("llm.openai.model"),
		BaseURL: v.GetString("llm.openai.base_url"),
	}
	lc.Gemini = llm.GeminiConfig{
		APIKey:  v.GetString("llm.gemini.api_key"),
		Model:   v.GetString("llm.gemini.model"),
		BaseURL: v.GetString("llm.gemini.base_url"),
	}
	lc.OpenRouter = llm.OpenRouterConfig{
		APIKey:  v.GetString("llm.openrouter.api_key"),
		Model:   v.GetString("llm.openrouter.model"),
		BaseURL: v.GetString("llm.openrouter.base_url"),
	}

	return &Config{
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			DSN:    v.GetString("db.dsn"),
		},
		Grading: GradingConfig{
			Threshold:        v.GetFloat64("grading.threshold"),
			Mode:             strings.ToLower(v.GetString("grading.mode")),
			Language:         strings.ToLower(v.GetString("grading.language")),
			BatchConcurrency: v.GetInt("grading.batch_concurrency"),
		},
		Server: ServerConfig{Addr: v.GetString("server.addr")},
		Cache: CacheConfig{
			RedisURL: v.GetString("cache.redis_url"),
			TTL:      v.GetDuration("cache.ttl"),
			Capacity: v.GetInt("cache.capacity"),
		},
		Translate: TranslateConfig{
			Target:            strings.ToLower(v.GetString("translate.target")),
			RequestsPerMinute: v.GetInt("translate.requests_per_minute"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		LLM: lc,
	}
}

var stemmerLanguages = map[string]bool{
	"english":   true,
	"spanish":   true,
	"french":    true,
	"russian":   true,
	"swedish":   true,
	"norwegian": true,
	"hungarian": true,
}

// Validate checks settings that would otherwise fail later and less
// clearly.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case store.DriverSQLite:
	case store.DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for the postgres driver")
		}
	default:
		return errors.Errorf("db.driver must be %q or %q, got %q", store.DriverSQLite, store.DriverPostgres, c.DB.Driver)
	}

	if c.Grading.Threshold < 0 || c.Grading.Threshold > 1 {
		return errors.Errorf("grading.threshold must be within [0, 1], got %v", c.Grading.Threshold)
	}
	switch vocab.GradingMode(c.Grading.Mode) {
	case vocab.ModeLenient, vocab.ModeStrict:
	default:
		return errors.Errorf("grading.mode must be %q or %q, got %q", vocab.ModeLenient, vocab.ModeStrict, c.Grading.Mode)
	}
	if !stemmerLanguages[c.Grading.Language] {
		return errors.Errorf("grading.language %q has no stemmer", c.Grading.Language)
	}

	if c.Translate.Target == "" {
		return errors.New("translate.target is required")
	}
	if c.Translate.RequestsPerMinute <= 0 {
		return errors.Errorf("translate.requests_per_minute must be positive, got %d", c.Translate.RequestsPerMinute)
	}
	if c.Cache.TTL < 0 {
		return errors.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	switch c.LLM.Provider {
	case llm.ProviderAuto, llm.ProviderNone, "":
	default:
		if err := c.LLM.Validate(); err != nil {
			return errors.Wrap(err, "llm")
		}
	}
	return nil
}

// VocabConfig returns the review service settings.
func (c *Config) VocabConfig() vocab.Config {
	return vocab.Config{
		Threshold:        c.Grading.Threshold,
		Mode:             vocab.GradingMode(c.Grading.Mode),
		Language:         c.Grading.Language,
		TargetLanguage:   c.Translate.Target,
		BatchConcurrency: c.Grading.BatchConcurrency,
	}
}

// DBPath returns the configured DSN, falling back to the default sqlite
// location.
func (c *Config) DBPath() (string, error) {
	if c.DB.DSN != "" {
		if c.DB.Driver == store.DriverSQLite {
			return c.DB.DSN, errors.WithStack(store.EnsureDir(c.DB.DSN))
		}
		return c.DB.DSN, nil
	}
	if c.DB.Driver != store.DriverSQLite {
		return "", errors.New("db.dsn is required")
	}
	return store.DefaultDBPath()
}
