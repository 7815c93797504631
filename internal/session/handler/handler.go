package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"quorum/internal/session/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/email"
	"quorum/pkg/platform/httputil"
	"quorum/pkg/platform/middleware/auth"
	"quorum/pkg/requestcontext"
)

type Service interface {
	Login(ctx context.Context, address string, orgID id.OrganizationID, code string) (*models.Issued, error)
	Revoke(ctx context.Context, token string) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts login behind limit, a per-client rate limiter.
func (h *Handler) RegisterPublic(r chi.Router, limit func(http.Handler) http.Handler) {
	r.With(limit).Post("/sessions/login", h.HandleLogin)
}

// RegisterProtected mounts endpoints that run after session middleware.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/sessions/logout", h.HandleLogout)
	r.Get("/sessions/me", h.HandleMe)
}

type LoginRequest struct {
	Email          string `json:"email" validate:"required,email,max=254"`
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
	Code           string `json:"code" validate:"omitempty,len=6,numeric"`
}

func (r *LoginRequest) Normalize() {
	r.Email = email.Normalize(r.Email)
	r.OrganizationID = strings.TrimSpace(r.OrganizationID)
	r.Code = strings.TrimSpace(r.Code)
}

type LoginResponse struct {
	Token          string    `json:"session_token"`
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"organization_id"`
	Role           string    `json:"role"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type MeResponse struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	SessionID      string `json:"session_id"`
	Role           string `json:"role"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	orgID, err := id.ParseOrganizationID(req.OrganizationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	issued, err := h.service.Login(ctx, req.Email, orgID, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"request_id", requestID,
			"organization_id", orgID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "session issued",
		"request_id", requestID,
		"session_id", issued.Session.ID,
		"device", issued.Session.DeviceLabel,
	)
	httputil.WriteSuccess(w, http.StatusOK, "logged in", LoginResponse{
		Token:          issued.Token,
		SessionID:      issued.Session.ID.String(),
		UserID:         issued.Session.UserID.String(),
		OrganizationID: issued.Session.OrganizationID.String(),
		Role:           issued.Role,
		ExpiresAt:      issued.Session.ExpiresAt,
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token, ok := auth.BearerToken(r)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
		return
	}
	if err := h.service.Revoke(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "logged out", nil)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := requestcontext.PrincipalFrom(r.Context())
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "current session", MeResponse{
		UserID:         p.UserID.String(),
		OrganizationID: p.OrganizationID.String(),
		SessionID:      p.SessionID.String(),
		Role:           p.Role,
	})
}
