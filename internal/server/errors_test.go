package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/clipvocab/internal/llm"
	"github.com/abhisek/clipvocab/internal/translate"
	"github.com/abhisek/clipvocab/internal/vocab"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"http error", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot},
		{"not found", fmt.Errorf("get: %w", vocab.ErrNotFound), http.StatusNotFound},
		{"duplicate", vocab.ErrDuplicate, http.StatusConflict},
		{"review conflict", fmt.Errorf("e1: %w", vocab.ErrConflict), http.StatusConflict},
		{"duplicate submission", fmt.Errorf("batch: %w", vocab.ErrDuplicateSubmission), http.StatusBadRequest},
		{"blank word", vocab.ErrBlankWord, http.StatusBadRequest},
		{"empty text", translate.ErrEmptyText, http.StatusBadRequest},
		{"refused", fmt.Errorf("translate: %w", &llm.ErrRefused{Reason: "finish reason SAFETY"}), http.StatusUnprocessableEntity},
		{"rate limited", fmt.Errorf("translate: %w", &llm.ErrRateLimit{RetryAfter: time.Second}), http.StatusTooManyRequests},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := statusFor(tt.err)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}

	_, msg := statusFor(errors.New("disk on fire"))
	assert.NotContains(t, msg, "disk")
}
