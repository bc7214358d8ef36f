// Package metrics exposes Prometheus instrumentation for the survey service.
//
// Metrics are registered on an explicit registry rather than the global one
// so the application and each test own an independent set.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "surveyor"

// Submission outcomes used as the "result" label.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

type Metrics struct {
	// SurveysCreated counts surveys created by owners.
	SurveysCreated prometheus.Counter

	// SubmissionsTotal counts public submissions by outcome.
	// Labels: result
	SubmissionsTotal *prometheus.CounterVec

	// RequestsTotal counts HTTP requests.
	// Labels: method, route, status
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures HTTP handling time.
	// Labels: method, route
	RequestDurationSeconds *prometheus.HistogramVec
}

// NewRegistry returns a registry preloaded with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SurveysCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "surveys_created_total",
			Help:      "Surveys created by owners.",
		}),
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "submissions_total",
			Help:      "Public survey submissions by outcome.",
		}, []string{"result"}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RecordSubmission is nil-safe so services can run without metrics in tests.
func (m *Metrics) RecordSubmission(result string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordSurveyCreated() {
	if m == nil {
		return
	}
	m.SurveysCreated.Inc()
}

// GinMiddleware records request counts and latency keyed by the matched route
// template, so path parameters do not explode label cardinality.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDurationSeconds.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
