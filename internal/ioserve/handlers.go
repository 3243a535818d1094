package ioserve

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aladaia/vocan/pkg/query"
	"github.com/gnames/gn"
	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
)

// AnswerResponse is the JSON reply to a question.
type AnswerResponse struct {
	Question string `json:"question"`
	Intent   string `json:"intent"`
	Arg      string `json:"arg,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Text     string `json:"text"`
	Cached   bool   `json:"cached"`
}

// ErrorResponse is the JSON body of failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

func (s *Server) getManifest(c echo.Context) error {
	return c.JSON(http.StatusOK, s.manifest)
}

func (s *Server) getSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, s.bundle.Summary)
}

func (s *Server) getStores(c echo.Context) error {
	return c.JSON(http.StatusOK, s.bundle.Stores)
}

func (s *Server) getStore(c echo.Context) error {
	id := c.Param("id")
	for _, st := range s.bundle.Stores {
		if st.StoreID == id {
			return c.JSON(http.StatusOK, st)
		}
	}
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown store " + id})
}

func (s *Server) getZones(c echo.Context) error {
	return c.JSON(http.StatusOK, s.bundle.Zones)
}

func (s *Server) getTags(c echo.Context) error {
	return c.JSON(http.StatusOK, s.bundle.Tags)
}

func (s *Server) getQuality(c echo.Context) error {
	return c.JSON(http.StatusOK, s.bundle.Quality)
}

func (s *Server) getPlan(c echo.Context) error {
	return c.JSON(http.StatusOK, s.bundle.Plan)
}

// ask answers the question in the q parameter. Questions without a
// known intent get the help text with 422.
func (s *Server) ask(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing question parameter q"})
	}

	key := strings.ToLower(q)
	if v, found := s.answers.Get(key); found {
		ans := v.(query.Answer)
		s.metrics.RecordQuestion(ans.Query.Intent.String(), true)
		return c.JSON(http.StatusOK, response(q, ans, true))
	}

	ans, err := s.engine.Ask(q)
	s.metrics.RecordQuestion(ans.Query.Intent.String(), false)
	if err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) {
			return c.JSON(http.StatusUnprocessableEntity, response(q, ans, false))
		}
		return err
	}

	s.answers.Set(key, ans, cache.DefaultExpiration)
	return c.JSON(http.StatusOK, response(q, ans, false))
}

func response(q string, ans query.Answer, cached bool) AnswerResponse {
	return AnswerResponse{
		Question: q,
		Intent:   ans.Query.Intent.String(),
		Arg:      ans.Query.Arg,
		Limit:    ans.Query.Limit,
		Text:     ans.Text,
		Cached:   cached,
	}
}
