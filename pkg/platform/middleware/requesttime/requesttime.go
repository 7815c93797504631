// Package requesttime pins one "now" per request so every timestamp written
// while serving it agrees.
package requesttime

import (
	"net/http"
	"time"

	"quorum/pkg/requestcontext"
)

// Clock returns the current instant.
type Clock func() time.Time

// Middleware pins the wall clock.
var Middleware = WithClock(time.Now)

// WithClock pins clock() at microsecond precision in UTC, the resolution the
// stores keep, so values read back compare equal to what was written.
func WithClock(clock Clock) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := clock().UTC().Truncate(time.Microsecond)
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), now)))
		})
	}
}
