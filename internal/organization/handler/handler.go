package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quorum/internal/organization/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/httputil"
	"quorum/pkg/requestcontext"
)

// Service is the admission surface the handler drives.
type Service interface {
	CreateOrganization(ctx context.Context, reg models.OwnerRegistration) (*models.CreatedOrganization, error)
	JoinWithAccessCode(ctx context.Context, code string, identity models.Identity) (*models.JoinResult, error)
	CreateInvitationToken(ctx context.Context, req models.InvitationRequest) (*models.IssuedInvitation, error)
	RedeemInvitationToken(ctx context.Context, token string, identity models.Identity) (*models.JoinResult, error)
	RevokeInvitationToken(ctx context.Context, token string, actor id.UserID) error
	DeactivateMember(ctx context.Context, actor id.UserID, orgID id.OrganizationID, member id.UserID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts endpoints reachable without a session.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/organizations/create", h.HandleCreateOrganization)
	r.Post("/organizations/join", h.HandleJoin)
	r.Post("/invitations/redeem", h.HandleRedeemInvitation)
}

// RegisterProtected mounts endpoints that need an authenticated principal.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/invitations", h.HandleCreateInvitation)
	r.Post("/invitations/revoke", h.HandleRevokeInvitation)
	r.Post("/organizations/members/deactivate", h.HandleDeactivateMember)
}

func (h *Handler) HandleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateOrganizationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CreateOrganization(ctx, models.OwnerRegistration{
		OrganizationName: req.OrganizationName,
		OwnerName:        req.OwnerName,
		OwnerEmail:       req.OwnerEmail,
		OwnerPassword:    req.OwnerPassword,
	})
	if err != nil {
		h.fail(ctx, w, "organization creation failed", err)
		return
	}

	h.logger.InfoContext(ctx, "organization created",
		"request_id", requestID,
		"organization_id", result.Organization.ID,
		"login_required", result.LoginRequired,
	)
	httputil.WriteSuccess(w, http.StatusCreated, "organization created", toCreateOrganizationResponse(result))
}

func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[JoinRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.JoinWithAccessCode(ctx, req.AccessCode, models.Identity{Email: req.Email, Name: req.Name})
	if err != nil {
		h.fail(ctx, w, "join with access code failed", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "joined organization", toJoinResponse(result))
}

func (h *Handler) HandleRedeemInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RedeemInvitationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.RedeemInvitationToken(ctx, req.Token, models.Identity{Email: req.Email, Name: req.Name})
	if err != nil {
		h.fail(ctx, w, "invitation redemption failed", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "invitation redeemed", toJoinResponse(result))
}

func (h *Handler) HandleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	principal, ok := requestcontext.PrincipalFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateInvitationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	issued, err := h.service.CreateInvitationToken(ctx, models.InvitationRequest{
		OrganizationID: principal.OrganizationID,
		Role:           req.Role,
		Email:          req.Email,
		ExpiresInDays:  req.ExpiresInDays,
		UsageLimit:     req.UsageLimit,
		CreatedBy:      principal.UserID,
	})
	if err != nil {
		h.fail(ctx, w, "invitation creation failed", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "invitation created", toInvitationResponse(issued))
}

func (h *Handler) HandleRevokeInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	principal, ok := requestcontext.PrincipalFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[RevokeInvitationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.RevokeInvitationToken(ctx, req.Token, principal.UserID); err != nil {
		h.fail(ctx, w, "invitation revocation failed", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "invitation revoked", nil)
}

func (h *Handler) HandleDeactivateMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	principal, ok := requestcontext.PrincipalFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[DeactivateMemberRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	member, err := id.ParseUserID(req.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.DeactivateMember(ctx, principal.UserID, principal.OrganizationID, member); err != nil {
		h.fail(ctx, w, "member deactivation failed", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "member deactivated", nil)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}
