// Package server exposes the vocabulary service over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/abhisek/clipvocab/internal/vocab"
)

const shutdownTimeout = 10 * time.Second

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options wires a Server. Service is required.
type Options struct {
	Service    *vocab.Service
	Translator vocab.Translator
	DB         Pinger
	Logger     *slog.Logger
	Now        func() time.Time
}

// Server is the HTTP front end.
type Server struct {
	echo       *echo.Echo
	svc        *vocab.Service
	translator vocab.Translator
	db         Pinger
	logger     *slog.Logger
	now        func() time.Time
}

type requestValidator struct {
	v *validator.Validate
}

func (r *requestValidator) Validate(i any) error {
	return r.v.Struct(i)
}

// New builds the router and middleware chain.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{v: validator.New()}

	s := &Server{
		echo:       e,
		svc:        opts.Service,
		translator: opts.Translator,
		db:         opts.DB,
		logger:     logger.With("component", "http"),
		now:        now,
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("latency_ms", v.Latency.Milliseconds()),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), levelFor(v.Status), "request", attrs...)
			return nil
		},
	}))

	s.routes()
	return s
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.health)

	api := s.echo.Group("/api/v1")

	v := api.Group("/vocabulary")
	v.POST("", s.capture)
	v.GET("", s.list)
	v.GET("/:id", s.get)
	v.DELETE("/:id", s.remove)
	v.GET("/:id/history", s.history)

	r := api.Group("/reviews")
	r.GET("/due", s.due)
	r.POST("", s.submitBatch)
	r.POST("/:id", s.submit)

	api.POST("/grade", s.grade)
	api.POST("/translate", s.translate)
	api.GET("/stats", s.stats)
}

// ServeHTTP lets the server be mounted or driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}
