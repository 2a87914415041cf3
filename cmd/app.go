package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/cache"
	"github.com/abhisek/clipvocab/internal/config"
	"github.com/abhisek/clipvocab/internal/llm"
	"github.com/abhisek/clipvocab/internal/logging"
	"github.com/abhisek/clipvocab/internal/store"
	"github.com/abhisek/clipvocab/internal/translate"
	"github.com/abhisek/clipvocab/internal/video"
	"github.com/abhisek/clipvocab/internal/vocab"
)

// localCacheTTL bounds how long the in-process tier keeps values when a
// shared Redis tier is configured.
const localCacheTTL = time.Hour

// app holds the dependencies shared by the commands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store

	// translator is nil when no LLM provider is configured.
	translator *translate.Translator
	svc        *vocab.Service

	closers []func() error
}

// loadConfig resolves configuration from the env file, environment and
// command flags, and builds the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile, cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	dsn, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(cfg.DB.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newApp opens the store and builds the vocabulary service. Translation and
// the Redis cache tier are optional: when they cannot be set up a warning
// is logged and the app runs without them.
func newApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, store: st, closers: []func() error{st.Close}}

	c := a.buildCache(ctx)

	if llmCfg, ok := cfg.LLM.Resolve(); ok {
		provider, err := llm.NewProvider(ctx, llmCfg, st.LLMEvents(), logger)
		if err != nil {
			logger.Warn("LLM provider not configured, translation unavailable", "provider", llmCfg.Provider, "error", err)
		} else {
			a.translator = translate.New(provider, translate.Options{
				Cache:             c,
				CacheTTL:          cfg.Cache.TTL,
				RequestsPerMinute: cfg.Translate.RequestsPerMinute,
				Logger:            logger,
			})
		}
	} else {
		logger.Debug("no LLM provider configured, translation disabled")
	}

	deps := vocab.Deps{
		Vocab:  st.Vocab(),
		Logs:   st.ReviewLogs(),
		Videos: video.NewSource(video.Options{Cache: c, Logger: logger}),
		Logger: logger,
	}
	if a.translator != nil {
		deps.Translator = a.translator
	}
	a.svc = vocab.NewService(deps, cfg.VocabConfig())
	return a, nil
}

func (a *app) buildCache(ctx context.Context) cache.Cache {
	local := cache.NewMemory(a.cfg.Cache.Capacity)
	if a.cfg.Cache.RedisURL == "" {
		return local
	}
	r, err := cache.NewRedis(ctx, a.cfg.Cache.RedisURL, a.logger)
	if err != nil {
		a.logger.Warn("redis unavailable, using in-memory cache only", "error", err)
		return local
	}
	a.closers = append(a.closers, r.Close)
	return cache.NewTiered(local, r, localCacheTTL)
}

// Close releases everything newApp opened, newest first.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
