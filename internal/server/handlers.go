package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/clipvocab/internal/textmatch"
	"github.com/abhisek/clipvocab/internal/vocab"
)

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

type captureRequest struct {
	Word        string `json:"word" validate:"required"`
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
	VideoID     string `json:"video_id"`
}

type reviewRequest struct {
	Answer string `json:"answer"`
}

type batchRequest struct {
	Submissions []vocab.Submission `json:"submissions" validate:"required,min=1,max=100,dive"`
}

type gradeRequest struct {
	Answer    string  `json:"answer"`
	Reference string  `json:"reference" validate:"required"`
	Threshold float64 `json:"threshold" validate:"gte=0,lte=1"`
}

type gradeResponse struct {
	textmatch.Verdict
	Feedback []textmatch.WordDiff `json:"feedback,omitempty"`
}

type translateRequest struct {
	Text   string `json:"text" validate:"required"`
	Target string `json:"target"`
}

type translateResponse struct {
	Text        string `json:"text"`
	Target      string `json:"target"`
	Translation string `json:"translation"`
}

type pageQuery struct {
	Limit int `query:"limit" validate:"gte=0,lte=1000"`
}

// bindValid binds the request into req and runs struct validation.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func (s *Server) health(c echo.Context) error {
	if s.db != nil {
		if err := s.db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) capture(c echo.Context) error {
	var req captureRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	e, err := s.svc.Capture(c.Request().Context(), vocab.CaptureInput{
		Word:        req.Word,
		Sentence:    req.Sentence,
		Translation: req.Translation,
		VideoID:     req.VideoID,
	}, s.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

func (s *Server) list(c echo.Context) error {
	var q pageQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	entries, err := s.svc.List(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(entries))
}

func (s *Server) get(c echo.Context) error {
	e, err := s.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) remove(c echo.Context) error {
	if err := s.svc.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) history(c echo.Context) error {
	logs, err := s.svc.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(logs))
}

func (s *Server) due(c echo.Context) error {
	var q pageQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	due, err := s.svc.Due(c.Request().Context(), s.now(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(due))
}

func (s *Server) submit(c echo.Context) error {
	var req reviewRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	res, err := s.svc.Submit(c.Request().Context(), vocab.Submission{
		EntryID: c.Param("id"),
		Answer:  req.Answer,
	}, s.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) submitBatch(c echo.Context) error {
	var req batchRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	results, err := s.svc.SubmitBatch(c.Request().Context(), req.Submissions, s.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(results))
}

func (s *Server) grade(c echo.Context) error {
	var req gradeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	v := s.svc.GradeWithThreshold(req.Answer, req.Reference, req.Threshold)
	resp := gradeResponse{Verdict: v}
	if !v.Accepted {
		resp.Feedback = textmatch.Feedback(req.Answer, req.Reference)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) translate(c echo.Context) error {
	if s.translator == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "translation is not configured")
	}
	var req translateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	target := req.Target
	if target == "" {
		target = s.svc.TargetLanguage()
	}
	out, err := s.translator.Translate(c.Request().Context(), req.Text, target)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, translateResponse{Text: req.Text, Target: target, Translation: out})
}

func (s *Server) stats(c echo.Context) error {
	st, err := s.svc.Stats(c.Request().Context(), s.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
