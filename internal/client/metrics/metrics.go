// Package metrics collects and exposes Prometheus metrics for the client
// transport.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the transport reports into.
type Recorder interface {
	RecordAttempt(method string, ok bool)
	RecordHTTPStatus(statusCode int)
	RecordRetryDelay(d time.Duration)
	RecordExhausted(method string)
	RecordLatency(d time.Duration)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	attempts   *prometheus.CounterVec
	httpStatus *prometheus.CounterVec
	retryDelay prometheus.Histogram
	exhausted  *prometheus.CounterVec
	latency    prometheus.Histogram
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeboard_request_attempts_total",
			Help: "HTTP attempts made by the client, by method and outcome",
		}, []string{"method", "outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeboard_http_status_total",
			Help: "Responses received, by status code",
		}, []string{"status_code"}),
		retryDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradeboard_retry_delay_seconds",
			Help:    "Backoff waited before a retry",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 4, 5, 10},
		}),
		exhausted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradeboard_retries_exhausted_total",
			Help: "Logical requests that failed after all attempts",
		}, []string{"method"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradeboard_attempt_latency_seconds",
			Help:    "Latency of a single HTTP attempt",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.attempts, c.httpStatus, c.retryDelay, c.exhausted, c.latency)
	return c
}

func (c *Collector) RecordAttempt(method string, ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	c.attempts.WithLabelValues(method, outcome).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordRetryDelay(d time.Duration) {
	c.retryDelay.Observe(d.Seconds())
}

func (c *Collector) RecordExhausted(method string) {
	c.exhausted.WithLabelValues(method).Inc()
}

func (c *Collector) RecordLatency(d time.Duration) {
	c.latency.Observe(d.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordAttempt(string, bool)     {}
func (Nop) RecordHTTPStatus(int)           {}
func (Nop) RecordRetryDelay(time.Duration) {}
func (Nop) RecordExhausted(string)         {}
func (Nop) RecordLatency(time.Duration)    {}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute mounts Handler at /metrics.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
