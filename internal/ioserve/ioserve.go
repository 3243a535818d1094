// Package ioserve exposes the artifacts of the last run through a
// read-only HTTP API.
//
// The API answers the same fixed-intent questions as the ask command and
// serves the aggregate artifacts as JSON. Nothing is recomputed.
package ioserve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aladaia/vocan/pkg/query"
	"github.com/aladaia/vocan/pkg/results"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIPrefix is the path prefix of all API routes.
const APIPrefix = "/api/v1"

const shutdownTimeout = 5 * time.Second

// Server is the HTTP API over one artifact bundle.
type Server struct {
	bundle   *query.Bundle
	manifest results.Manifest
	engine   *query.Engine
	answers  *cache.Cache
	metrics  *Metrics
	registry *prometheus.Registry
	e        *echo.Echo
}

// New creates a Server. Answers to repeated questions are cached for
// cacheTTL.
func New(
	b *query.Bundle,
	man results.Manifest,
	cacheTTL time.Duration,
) (*Server, error) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		bundle:   b,
		manifest: man,
		engine:   query.New(b),
		answers:  cache.New(cacheTTL, 2*cacheTTL),
		metrics:  m,
		registry: reg,
	}
	s.e = s.routes()
	return s, nil
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("API request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))
	e.Use(s.metrics.middleware)

	api := e.Group(APIPrefix)
	api.GET("/ping", s.ping)
	api.GET("/manifest", s.getManifest)
	api.GET("/summary", s.getSummary)
	api.GET("/stores", s.getStores)
	api.GET("/stores/:id", s.getStore)
	api.GET("/zones", s.getZones)
	api.GET("/tags", s.getTags)
	api.GET("/quality", s.getQuality)
	api.GET("/plan", s.getPlan)
	api.GET("/ask", s.ask)

	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
			ErrorHandling: promhttp.HTTPErrorOnError,
		}),
	))
	return e
}

// Run serves the API on the port until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return ListenError(addr, err)
	}
	s.e.Listener = ln

	slog.Info("HTTP API started", "addr", addr, "run_id", s.manifest.RunID)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		err := s.e.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return ListenError(addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = s.e.Shutdown(shutCtx); err != nil {
		return err
	}
	<-errCh
	slog.Info("HTTP API stopped", "addr", addr)
	return nil
}
