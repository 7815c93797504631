package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"quorum/internal/ballot/handler/mocks"
	"quorum/internal/ballot/models"
	"quorum/internal/ballot/service"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/requestcontext"
	"quorum/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
	voter   requestcontext.Principal
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.RegisterPublic(s.router)
	h.RegisterProtected(s.router)
	s.voter = requestcontext.Principal{UserID: id.NewUserID(), OrganizationID: id.NewOrganizationID(), Role: "voter"}
}

func receipt(changeCount int) *models.Receipt {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return &models.Receipt{
		ID:             "a1b2c3",
		VoteID:         id.NewVoteID(),
		ElectionID:     id.NewElectionID(),
		CastAt:         now,
		CanChangeUntil: now.Add(10 * time.Minute),
		ChangeCount:    changeCount,
		MaxChanges:     3,
		ChainIndex:     7,
		ChainDigest:    []byte{0xab, 0xcd},
	}
}

// =============================================================================
// Elections
// =============================================================================

func (s *HandlerSuite) TestCreateElection() {
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	body := map[string]any{
		"name":       " Board ",
		"start_time": start,
		"end_time":   start.Add(8 * time.Hour),
		"candidates": []string{" Ada ", "Grace"},
	}

	s.Run("201 with candidates in order", func() {
		admin := s.voter
		admin.Role = "admin"
		s.service.EXPECT().CreateElection(gomock.Any(), admin, models.ElectionRequest{
			Name:       "Board",
			StartTime:  start,
			EndTime:    start.Add(8 * time.Hour),
			Candidates: []string{"Ada", "Grace"},
		}).DoAndReturn(func(_ any, _ requestcontext.Principal, req models.ElectionRequest) (*models.Election, error) {
			return models.NewElection(admin.OrganizationID, req.Name, req.StartTime, req.EndTime, req.Candidates, admin.UserID, start)
		})

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/elections", body)
		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(req, admin))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		data := testutil.Data(s.T(), rr)
		s.Equal("Board", data["name"])
		s.Len(data["candidates"], 2)
	})

	s.Run("403 for voters", func() {
		s.service.EXPECT().CreateElection(gomock.Any(), s.voter, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "only admins and owners can create elections"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/elections", body)
		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(req, s.voter))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))
	})

	s.Run("400 when the window is inverted", func() {
		bad := map[string]any{"name": "X", "start_time": start, "end_time": start, "candidates": []string{"A", "B"}}
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/elections", bad)
		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(req, s.voter))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("400 with a single candidate", func() {
		bad := map[string]any{"name": "X", "start_time": start, "end_time": start.Add(time.Hour), "candidates": []string{"A"}}
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/elections", bad)
		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(req, s.voter))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("401 without a session", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/elections", body))
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})
}

func (s *HandlerSuite) TestGetElection() {
	s.Run("400 on malformed id", func() {
		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(testutil.NewRequest(s.T(), http.MethodGet, "/elections/nope"), s.voter))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("reports derived status", func() {
		now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
		e, err := models.NewElection(s.voter.OrganizationID, "Board", now, now.Add(time.Hour), []string{"A", "B"}, id.NewUserID(), now)
		s.Require().NoError(err)
		s.service.EXPECT().GetElection(gomock.Any(), s.voter, e.ID).Return(e, models.StatusActive, nil)

		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(testutil.NewRequest(s.T(), http.MethodGet, "/elections/"+e.ID.String()), s.voter))
		testutil.AssertStatusOK(s.T(), rr)
		s.Equal("active", testutil.Data(s.T(), rr)["status"])
	})
}

// =============================================================================
// Cast
// =============================================================================

func (s *HandlerSuite) TestCast() {
	electionID := id.NewElectionID()
	candidateID := id.NewCandidateID()
	body := map[string]any{"election_id": electionID.String(), "candidate_id": candidateID.String()}

	s.Run("201 on first cast, never echoing the candidate", func() {
		s.service.EXPECT().Cast(gomock.Any(), s.voter, electionID, candidateID).
			Return(&service.CastResult{Receipt: receipt(0), Token: "jwt"}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/cast", body)
		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(req, s.voter))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		data := testutil.Data(s.T(), rr)
		s.Equal("a1b2c3", data["receipt_id"])
		s.Equal("jwt", data["receipt_token"])
		s.Equal("abcd", data["chain_digest"])
		s.EqualValues(3, data["changes_remaining"])
		s.NotContains(data, "candidate_id")
	})

	s.Run("200 on a change", func() {
		s.service.EXPECT().Cast(gomock.Any(), s.voter, electionID, candidateID).
			Return(&service.CastResult{Receipt: receipt(2), Changed: true}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/cast", body)
		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(req, s.voter))
		testutil.AssertStatusOK(s.T(), rr)
		s.EqualValues(1, testutil.Data(s.T(), rr)["changes_remaining"])
	})

	rejections := []struct {
		code   dErrors.Code
		status int
	}{
		{dErrors.CodeElectionNotActive, http.StatusConflict},
		{dErrors.CodeAlreadyFinal, http.StatusConflict},
		{dErrors.CodeChangeLimitExceeded, http.StatusConflict},
		{dErrors.CodeConflict, http.StatusConflict},
		{dErrors.CodeForbidden, http.StatusForbidden},
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeTimeout, http.StatusServiceUnavailable},
	}
	for _, tc := range rejections {
		s.Run("maps "+string(tc.code), func() {
			s.service.EXPECT().Cast(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, dErrors.New(tc.code, "nope"))

			req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/cast", body)
			rr := testutil.DoRequest(s.router, testutil.WithPrincipal(req, s.voter))
			testutil.AssertStatusAndError(s.T(), rr, tc.status, string(tc.code))
		})
	}

	s.Run("400 on non-uuid candidate", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/cast",
			map[string]any{"election_id": electionID.String(), "candidate_id": "ada"})
		rr := testutil.DoRequest(s.router, testutil.WithPrincipal(req, s.voter))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

// =============================================================================
// Receipt verification
// =============================================================================

func (s *HandlerSuite) TestVerifyReceipt() {
	s.Run("valid", func() {
		s.service.EXPECT().VerifyReceipt(gomock.Any(), "a1b2c3").
			Return(&models.Verification{Status: models.VerificationValid, Receipt: receipt(0), Superseded: true}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/votes/receipt/a1b2c3/verify"))
		testutil.AssertStatusOK(s.T(), rr)
		data := testutil.Data(s.T(), rr)
		s.Equal("valid", data["status"])
		s.Equal(true, data["superseded"])
		s.Contains(data, "receipt")
	})

	s.Run("tampered is still 200 but carries no receipt", func() {
		s.service.EXPECT().VerifyReceipt(gomock.Any(), "a1b2c3").
			Return(&models.Verification{Status: models.VerificationTampered, Receipt: receipt(0)}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/votes/receipt/a1b2c3/verify"))
		testutil.AssertStatusOK(s.T(), rr)
		data := testutil.Data(s.T(), rr)
		s.Equal("tampered", data["status"])
		s.NotContains(data, "receipt")
	})

	s.Run("not found", func() {
		s.service.EXPECT().VerifyReceipt(gomock.Any(), "missing").
			Return(&models.Verification{Status: models.VerificationNotFound}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/votes/receipt/missing/verify"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})

	s.Run("token", func() {
		s.service.EXPECT().VerifyReceiptToken(gomock.Any(), "jwt").
			Return(&models.Verification{Status: models.VerificationValid, Receipt: receipt(1)}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/receipt/verify-token", map[string]any{"token": " jwt "})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("expired token", func() {
		s.service.EXPECT().VerifyReceiptToken(gomock.Any(), "old").
			Return(nil, dErrors.New(dErrors.CodeExpired, "receipt token expired"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/receipt/verify-token", map[string]any{"token": "old"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeExpired))
	})
}
