package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/abhisek/clipvocab/internal/llm"
	"github.com/abhisek/clipvocab/internal/translate"
	"github.com/abhisek/clipvocab/internal/vocab"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes. Anything unknown is a
// 500 with a generic message so internals are not leaked.
func statusFor(err error) (int, string) {
	var (
		he      *echo.HTTPError
		ve      validator.ValidationErrors
		refused *llm.ErrRefused
		limited *llm.ErrRateLimit
	)
	switch {
	case errors.As(err, &he):
		if he.Internal != nil {
			return he.Code, fmt.Sprintf("%v: %v", he.Message, he.Internal)
		}
		return he.Code, fmt.Sprint(he.Message)
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, vocab.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, vocab.ErrDuplicate),
		errors.Is(err, vocab.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, vocab.ErrBlankWord),
		errors.Is(err, vocab.ErrDuplicateSubmission),
		errors.Is(err, translate.ErrEmptyText),
		errors.Is(err, translate.ErrNoTarget):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &refused):
		return http.StatusUnprocessableEntity, refused.Error()
	case errors.As(err, &limited):
		return http.StatusTooManyRequests, "translation provider is rate limited"
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{Error: msg})
	}
	if err != nil {
		s.logger.Error("write error response", "error", err)
	}
}
