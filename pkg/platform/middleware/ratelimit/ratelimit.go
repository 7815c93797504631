// Package ratelimit throttles unauthenticated endpoints per client IP.
package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/httputil"
	"quorum/pkg/requestcontext"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client IP. Idle buckets are evicted
// lazily on access once they have been unused for idleTTL.
type Limiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	logger    *slog.Logger
}

// New allows perMinute requests per IP with the given burst.
func New(perMinute, burst int, logger *slog.Logger) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		logger:   logger,
	}
}

// Allow reports whether key may proceed at now.
func (l *Limiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.idleTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests over budget with 429. It reads the client IP set
// by the metadata middleware.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		if l.Allow(ip, time.Now()) {
			next.ServeHTTP(w, r)
			return
		}

		l.logger.WarnContext(ctx, "rate limit exceeded",
			"request_id", requestcontext.RequestID(ctx),
			"client_ip", ip,
		)
		retryAfter := time.Duration(float64(time.Second) / float64(l.limit))
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
		httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.Envelope{
			Success: false,
			Message: "too many requests, slow down",
			Code:    string(dErrors.CodeTooManyAttempts),
		})
	})
}
