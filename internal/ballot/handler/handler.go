package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quorum/internal/ballot/models"
	"quorum/internal/ballot/service"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/httputil"
	"quorum/pkg/requestcontext"
)

type Service interface {
	CreateElection(ctx context.Context, p requestcontext.Principal, req models.ElectionRequest) (*models.Election, error)
	GetElection(ctx context.Context, p requestcontext.Principal, electionID id.ElectionID) (*models.Election, models.Status, error)
	Cast(ctx context.Context, p requestcontext.Principal, electionID id.ElectionID, candidateID id.CandidateID) (*service.CastResult, error)
	VerifyReceipt(ctx context.Context, receiptID string) (*models.Verification, error)
	VerifyReceiptToken(ctx context.Context, token string) (*models.Verification, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts receipt verification, which needs only the receipt.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/votes/receipt/{id}/verify", h.HandleVerifyReceipt)
	r.Post("/votes/receipt/verify-token", h.HandleVerifyReceiptToken)
}

func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/elections", h.HandleCreateElection)
	r.Get("/elections/{id}", h.HandleGetElection)
	r.Post("/votes/cast", h.HandleCast)
}

func (h *Handler) HandleCreateElection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	p, ok := requestcontext.PrincipalFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateElectionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	e, err := h.service.CreateElection(ctx, p, models.ElectionRequest{
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Candidates: req.Candidates,
	})
	if err != nil {
		h.fail(ctx, w, "election creation failed", err)
		return
	}
	h.logger.InfoContext(ctx, "election created",
		"request_id", requestID,
		"election_id", e.ID,
		"organization_id", e.OrganizationID,
	)
	httputil.WriteSuccess(w, http.StatusCreated, "election created",
		toElectionResponse(e, e.StatusAt(requestcontext.Now(ctx))))
}

func (h *Handler) HandleGetElection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, ok := requestcontext.PrincipalFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	electionID, err := id.ParseElectionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	e, status, err := h.service.GetElection(ctx, p, electionID)
	if err != nil {
		h.fail(ctx, w, "election lookup failed", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "election", toElectionResponse(e, status))
}

func (h *Handler) HandleCast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	p, ok := requestcontext.PrincipalFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[CastRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	electionID, err := id.ParseElectionID(req.ElectionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	candidateID, err := id.ParseCandidateID(req.CandidateID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Cast(ctx, p, electionID, candidateID)
	if err != nil {
		h.logger.WarnContext(ctx, "vote rejected",
			"request_id", requestID,
			"election_id", electionID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	status, msg := http.StatusCreated, "vote recorded"
	if res.Changed {
		status, msg = http.StatusOK, "vote changed"
	}
	httputil.WriteSuccess(w, status, msg, toReceiptResponse(res.Receipt, res.Token))
}

func (h *Handler) HandleVerifyReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := h.service.VerifyReceipt(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "receipt verification failed", err)
		return
	}
	h.writeVerification(w, v)
}

func (h *Handler) HandleVerifyReceiptToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyTokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	v, err := h.service.VerifyReceiptToken(ctx, req.Token)
	if err != nil {
		h.fail(ctx, w, "receipt token verification failed", err)
		return
	}
	h.writeVerification(w, v)
}

// writeVerification answers 200 for valid and tampered receipts so clients
// can tell them apart from an unknown receipt id.
func (h *Handler) writeVerification(w http.ResponseWriter, v *models.Verification) {
	switch v.Status {
	case models.VerificationNotFound:
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Envelope{
			Success: false,
			Message: "receipt not found",
			Code:    string(dErrors.CodeNotFound),
			Data:    toVerificationResponse(v),
		})
	case models.VerificationTampered:
		httputil.WriteSuccess(w, http.StatusOK, "receipt does not match the ledger", toVerificationResponse(v))
	default:
		httputil.WriteSuccess(w, http.StatusOK, "receipt verified", toVerificationResponse(v))
	}
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}
