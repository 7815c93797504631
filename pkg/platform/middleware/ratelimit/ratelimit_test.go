package ratelimit

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quorum/pkg/requestcontext"
)

func TestAllowPerKey(t *testing.T) {
	l := New(60, 2, slog.New(slog.NewTextHandler(io.Discard, nil)))
	now := time.Now()

	assert.True(t, l.Allow("a", now))
	assert.True(t, l.Allow("a", now))
	assert.False(t, l.Allow("a", now), "burst exhausted")
	assert.True(t, l.Allow("b", now), "other clients unaffected")
	assert.True(t, l.Allow("a", now.Add(time.Second)), "refills at one per second")
}

func TestEvictsIdleVisitors(t *testing.T) {
	l := New(60, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	now := time.Now()
	l.Allow("a", now)
	l.Allow("b", now.Add(11*time.Minute))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.visitors, "a")
	assert.Contains(t, l.visitors, "b")
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	l := New(1, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() int {
		r := httptest.NewRequest(http.MethodPost, "/sessions/login", nil)
		r = r.WithContext(requestcontext.WithClientMetadata(r.Context(), "203.0.113.1", ""))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
