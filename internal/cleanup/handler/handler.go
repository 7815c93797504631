package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"quorum/internal/cleanup/models"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/httputil"
	"quorum/pkg/requestcontext"
)

type Scheduler interface {
	Run(ctx context.Context, trigger models.Trigger) (*models.Report, error)
	Stats() models.Stats
	RecentRuns(ctx context.Context, limit int) ([]models.Run, error)
}

type Handler struct {
	scheduler Scheduler
	logger    *slog.Logger
}

func New(scheduler Scheduler, logger *slog.Logger) *Handler {
	return &Handler{scheduler: scheduler, logger: logger}
}

// Register mounts the operator endpoints. The caller wraps r in the admin
// token guard.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/cleanup/run", h.HandleRun)
	r.Get("/admin/cleanup/stats", h.HandleStats)
}

type RunResponse struct {
	RunID      string    `json:"run_id"`
	Category   string    `json:"category"`
	Trigger    string    `json:"trigger"`
	Records    int64     `json:"records_affected"`
	DurationMS int64     `json:"duration_ms"`
	Status     string    `json:"status"`
	ErrorCode  string    `json:"error_code,omitempty"`
	StartedAt  time.Time `json:"started_at"`
}

type ReportResponse struct {
	RunID     string        `json:"run_id"`
	Trigger   string        `json:"trigger"`
	StartedAt time.Time     `json:"started_at"`
	Total     int64         `json:"records_affected"`
	Failed    bool          `json:"failed"`
	Runs      []RunResponse `json:"runs"`
}

type StatsResponse struct {
	Runs      int64         `json:"runs"`
	Failures  int64         `json:"failures"`
	Running   bool          `json:"running"`
	LastRunAt *time.Time    `json:"last_run_at,omitempty"`
	Recent    []RunResponse `json:"recent"`
}

func toRunResponses(runs []models.Run) []RunResponse {
	out := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		resp := RunResponse{
			RunID:      r.RunID.String(),
			Category:   string(r.Category),
			Trigger:    string(r.Trigger),
			Records:    r.RecordsAffected,
			DurationMS: r.Duration.Milliseconds(),
			Status:     string(r.Status),
			StartedAt:  r.StartedAt,
		}
		// The stored error text stays in the run log.
		if r.Status == models.RunFailed {
			resp.ErrorCode = string(dErrors.CodeInternal)
		}
		out = append(out, resp)
	}
	return out
}

func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	report, err := h.scheduler.Run(ctx, models.TriggerManual)
	if err != nil {
		h.logger.WarnContext(ctx, "manual cleanup rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "cleanup completed", ReportResponse{
		RunID:     report.RunID.String(),
		Trigger:   string(report.Trigger),
		StartedAt: report.StartedAt,
		Total:     report.Total(),
		Failed:    report.Failed(),
		Runs:      toRunResponses(report.Runs),
	})
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 30
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be between 1 and 500"))
			return
		}
		limit = n
	}
	recent, err := h.scheduler.RecentRuns(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load cleanup runs",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	stats := h.scheduler.Stats()
	resp := StatsResponse{
		Runs:     stats.Runs,
		Failures: stats.Failures,
		Running:  stats.Running,
		Recent:   toRunResponses(recent),
	}
	if !stats.LastRunAt.IsZero() {
		resp.LastRunAt = &stats.LastRunAt
	}
	httputil.WriteSuccess(w, http.StatusOK, "cleanup stats", resp)
}
