package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"quorum/internal/otp/models"
	"quorum/pkg/email"
	"quorum/pkg/platform/httputil"
	"quorum/pkg/requestcontext"
)

type Service interface {
	Issue(ctx context.Context, address string) (*models.Issued, error)
	Verify(ctx context.Context, address, code string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the code endpoints. limit wraps both routes; callers pass a
// per-client rate limiter.
func (h *Handler) Register(r chi.Router, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/organizations/send-otp", h.HandleSend)
	r.With(limit).Post("/organizations/verify-otp", h.HandleVerify)
}

type SendRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

func (r *SendRequest) Normalize() {
	r.Email = email.Normalize(r.Email)
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

func (r *VerifyRequest) Normalize() {
	r.Email = email.Normalize(r.Email)
	r.Code = strings.TrimSpace(r.Code)
}

type SendResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SendRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	issued, err := h.service.Issue(ctx, req.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "verification code not sent",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "verification code sent",
		SendResponse{Email: issued.Email, ExpiresAt: issued.ExpiresAt})
}

func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.Verify(ctx, req.Email, req.Code); err != nil {
		h.logger.InfoContext(ctx, "verification code rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "email verified", map[string]bool{"verified": true})
}
