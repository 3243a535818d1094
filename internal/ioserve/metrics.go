package ioserve

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics of the HTTP API.
type Metrics struct {
	questionsTotal  *prometheus.CounterVec
	cacheHitsTotal  prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates API metrics and registers them with the registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		questionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vocan_questions_total",
				Help: "Total number of questions answered, by detected intent",
			},
			[]string{"intent"},
		),
		cacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vocan_answer_cache_hits_total",
				Help: "Total number of answers served from the cache",
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vocan_http_request_duration_seconds",
				Help:    "Time taken to serve API requests",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"route"},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.questionsTotal.Describe(ch)
	m.cacheHitsTotal.Describe(ch)
	m.requestDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.questionsTotal.Collect(ch)
	m.cacheHitsTotal.Collect(ch)
	m.requestDuration.Collect(ch)
}

// RecordQuestion counts an answered question.
func (m *Metrics) RecordQuestion(intent string, cached bool) {
	m.questionsTotal.WithLabelValues(intent).Inc()
	if cached {
		m.cacheHitsTotal.Inc()
	}
}

// middleware observes request durations by route pattern.
func (m *Metrics) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}
