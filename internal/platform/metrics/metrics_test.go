package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("/votes/cast", http.MethodPost, "200", 10*time.Millisecond)
	m.ObserveRequest("/votes/cast", http.MethodPost, "200", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/votes/cast", http.MethodPost, "200")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveRequest("/", "GET", "200", 0) })
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg).ObserveRequest("/healthz", http.MethodGet, "200", time.Millisecond)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "quorum_http_requests_total")
}
