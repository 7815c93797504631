// Package httptransport assembles the public HTTP surface: shared middleware,
// health and metrics endpoints, and each bounded context's routes grouped by
// the credential they require.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	ballothandler "quorum/internal/ballot/handler"
	cleanuphandler "quorum/internal/cleanup/handler"
	orghandler "quorum/internal/organization/handler"
	otphandler "quorum/internal/otp/handler"
	"quorum/internal/platform/metrics"
	sessionhandler "quorum/internal/session/handler"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/httputil"
	"quorum/pkg/platform/middleware/admin"
	"quorum/pkg/platform/middleware/auth"
	"quorum/pkg/platform/middleware/metadata"
	"quorum/pkg/platform/middleware/request"
	"quorum/pkg/platform/middleware/requesttime"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Handlers bundles the per-context route owners.
type Handlers struct {
	Organizations *orghandler.Handler
	OTP           *otphandler.Handler
	Sessions      *sessionhandler.Handler
	Ballots       *ballothandler.Handler
	Cleanup       *cleanuphandler.Handler
}

// Deps is everything the router needs besides the handlers.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Sessions resolves bearer tokens for the protected group.
	Sessions auth.SessionValidator
	// Limit throttles the unauthenticated OTP and login endpoints.
	Limit          func(http.Handler) http.Handler
	AdminToken     string
	RequestTimeout time.Duration
	Health         map[string]HealthCheck
}

// NewRouter wires all endpoints.
func NewRouter(h Handlers, d Deps) http.Handler {
	if d.Limit == nil {
		d.Limit = func(next http.Handler) http.Handler { return next }
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(d.Logger, d.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(d.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})

	r.Get("/healthz", healthHandler(d.Health, d.Logger))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	// Public
	h.Organizations.RegisterPublic(r)
	h.OTP.Register(r, d.Limit)
	h.Sessions.RegisterPublic(r, d.Limit)
	h.Ballots.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(d.Sessions, d.Logger))
		h.Organizations.RegisterProtected(r)
		h.Sessions.RegisterProtected(r)
		h.Ballots.RegisterProtected(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(d.AdminToken, d.Logger))
		h.Cleanup.Register(r)
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
