package metrics

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const divisor = 100

// Forecast outcomes reported by the weather service.
const (
	OutcomeFresh    = "fresh"
	OutcomeDegraded = "degraded"
	OutcomeFailed   = "failed"
)

// Metrics holds Prometheus metric vectors for the forecast service.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP server metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Domain metrics
	ForecastRequestsTotal *prometheus.CounterVec
	ForecastErrorsTotal   *prometheus.CounterVec

	// Cron warmer
	WarmerRuns        *prometheus.CounterVec
	WarmerRunDuration prometheus.Histogram
}

// NewMetrics constructs and registers all service metrics on a private registry.
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests received",
			},
			[]string{"method", "endpoint", "status_class"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		ForecastRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "forecast_requests_total",
				Help:      "Forecast builds by outcome",
			},
			[]string{"outcome"},
		),

		ForecastErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "forecast_errors_total",
				Help:      "Forecast pipeline errors by stage",
			},
			[]string{"stage"},
		),

		WarmerRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "warmer_runs_total",
				Help:      "Background warm-up runs by result",
			},
			[]string{"result"},
		),

		WarmerRunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "warmer_run_duration_seconds",
				Help:      "Duration of background warm-up runs",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ForecastRequestsTotal,
		m.ForecastErrorsTotal,
		m.WarmerRuns,
		m.WarmerRunDuration,
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/sched/latencies:seconds")},
			),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler exposes the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveForecast counts one forecast build with the given outcome.
func (m *Metrics) ObserveForecast(outcome string) {
	m.ForecastRequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStageError counts a failure in one pipeline stage.
func (m *Metrics) ObserveStageError(stage string) {
	m.ForecastErrorsTotal.WithLabelValues(stage).Inc()
}

// ObserveWarmerRun counts a warmer run and records how long it took.
func (m *Metrics) ObserveWarmerRun(result string, d time.Duration) {
	m.WarmerRuns.WithLabelValues(result).Inc()
	m.WarmerRunDuration.Observe(d.Seconds())
}

// HTTPMiddleware returns a Gin middleware to instrument HTTP endpoints.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)

		statusClass := getStatusClass(c.Writer.Status())

		m.HTTPRequestsTotal.With(prometheus.Labels{
			"method":       c.Request.Method,
			"endpoint":     c.FullPath(),
			"status_class": statusClass,
		}).Inc()
		m.HTTPRequestDuration.With(prometheus.Labels{
			"method":   c.Request.Method,
			"endpoint": c.FullPath(),
		}).Observe(d.Seconds())
	}
}

func getStatusClass(code int) string {
	return fmt.Sprintf("%dxx", code/divisor)
}
