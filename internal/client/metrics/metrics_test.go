package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAttempt("GET", false)
	c.RecordAttempt("GET", false)
	c.RecordAttempt("GET", true)
	c.RecordHTTPStatus(503)
	c.RecordExhausted("GET")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.attempts.WithLabelValues("GET", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.attempts.WithLabelValues("GET", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpStatus.WithLabelValues("503")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.exhausted.WithLabelValues("GET")))
}

func TestCollector_Histograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRetryDelay(time.Second)
	c.RecordRetryDelay(2 * time.Second)
	c.RecordLatency(30 * time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "tradeboard_retry_delay_seconds", "tradeboard_attempt_latency_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "tradeboard_retry_delay_seconds" {
			h := mf.GetMetric()[0].GetHistogram()
			assert.Equal(t, uint64(2), h.GetSampleCount())
			assert.InDelta(t, 3.0, h.GetSampleSum(), 1e-9)
		}
	}
}

func TestNop_SatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordAttempt("GET", true)
	r.RecordHTTPStatus(200)
	r.RecordRetryDelay(time.Second)
	r.RecordExhausted("GET")
	r.RecordLatency(time.Millisecond)
}

func TestSetupMetricsRoute_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordAttempt("GET", true)

	handler := SetupMetricsRoute(reg)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "tradeboard_request_attempts_total"))
}
