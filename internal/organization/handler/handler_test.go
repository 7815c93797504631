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

	"quorum/internal/organization/handler/mocks"
	"quorum/internal/organization/models"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
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
}

func joinResult(role models.Role) *models.JoinResult {
	return &models.JoinResult{
		Organization: &models.Organization{ID: id.NewOrganizationID(), Name: "Acme", Slug: "acme", VoterAccessCode: "VVVV2222", AdminAccessCode: "AAAA3333"},
		User:         &models.User{ID: id.NewUserID()},
		Membership:   &models.Membership{ID: id.NewMembershipID(), Role: role},
		Role:         role,
	}
}

// =============================================================================
// Organization creation
// =============================================================================

func (s *HandlerSuite) TestCreateOrganization() {
	body := map[string]any{
		"organization_name": "Acme",
		"owner_name":        "Olive",
		"owner_email":       " Olive@Example.com ",
		"owner_password":    "password123",
	}

	s.Run("201 with access codes and session", func() {
		expires := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
		s.service.EXPECT().CreateOrganization(gomock.Any(), models.OwnerRegistration{
			OrganizationName: "Acme",
			OwnerName:        "Olive",
			OwnerEmail:       "olive@example.com",
			OwnerPassword:    "password123",
		}).Return(&models.CreatedOrganization{
			JoinResult: *joinResult(models.RoleOwner),
			Session:    &models.SessionGrant{Token: "bearer", ExpiresAt: expires},
		}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/organizations/create", body))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		data := testutil.Data(s.T(), rr)
		s.Equal("VVVV2222", data["voter_access_code"])
		s.Equal("bearer", data["session_token"])
		s.Equal(false, data["login_required"])
	})

	s.Run("login_required when no session was issued", func() {
		s.service.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).Return(&models.CreatedOrganization{
			JoinResult:    *joinResult(models.RoleOwner),
			LoginRequired: true,
		}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/organizations/create", body))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		data := testutil.Data(s.T(), rr)
		s.Equal(true, data["login_required"])
		s.NotContains(data, "session_token")
	})

	s.Run("409 on slug conflict", func() {
		s.service.EXPECT().CreateOrganization(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "an organization with this name already exists"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/organizations/create", body))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeConflict))
	})

	s.Run("400 on invalid email", func() {
		bad := map[string]any{"organization_name": "Acme", "owner_name": "O", "owner_email": "nope", "owner_password": "password123"}
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/organizations/create", bad))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("400 on unknown field", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/organizations/create", `{"surprise":1}`))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

// =============================================================================
// Invitations
// =============================================================================

func (s *HandlerSuite) TestInvitations() {
	userID := id.NewUserID()
	orgID := id.NewOrganizationID()

	s.Run("create uses the session organization", func() {
		s.service.EXPECT().CreateInvitationToken(gomock.Any(), models.InvitationRequest{
			OrganizationID: orgID,
			Role:           "admin",
			UsageLimit:     5,
			CreatedBy:      userID,
		}).Return(&models.IssuedInvitation{
			Token:      "opaque",
			Invitation: &models.InvitationToken{Role: models.RoleAdmin, UsageLimit: 5},
		}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/invitations", map[string]any{"role": "Admin", "usage_limit": 5})
		rr := testutil.DoRequest(s.router, testutil.WithMember(req, userID, orgID, "admin"))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		s.Equal("opaque", testutil.Data(s.T(), rr)["token"])
	})

	s.Run("create without principal is unauthorized", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/invitations", map[string]any{}))
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("usage_limit out of range", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/invitations", map[string]any{"usage_limit": 10001})
		rr := testutil.DoRequest(s.router, testutil.WithMember(req, userID, orgID, "admin"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	outcomes := []struct {
		code   dErrors.Code
		status int
	}{
		{dErrors.CodeExhausted, http.StatusConflict},
		{dErrors.CodeExpired, http.StatusUnauthorized},
		{dErrors.CodeRevoked, http.StatusForbidden},
		{dErrors.CodeEmailMismatch, http.StatusForbidden},
		{dErrors.CodeNotFound, http.StatusNotFound},
	}
	for _, tc := range outcomes {
		s.Run("redeem maps "+string(tc.code), func() {
			s.service.EXPECT().RedeemInvitationToken(gomock.Any(), "opaque", models.Identity{Email: "v@acme.test"}).
				Return(nil, dErrors.New(tc.code, "nope"))

			req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/invitations/redeem", map[string]any{"token": "opaque", "email": "V@acme.test"})
			rr := testutil.DoRequest(s.router, req)
			testutil.AssertStatusAndError(s.T(), rr, tc.status, string(tc.code))
		})
	}

	s.Run("revoke", func() {
		s.service.EXPECT().RevokeInvitationToken(gomock.Any(), "opaque", userID).Return(nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/invitations/revoke", map[string]any{"token": "opaque"})
		rr := testutil.DoRequest(s.router, testutil.WithMember(req, userID, orgID, "owner"))
		testutil.AssertStatusOK(s.T(), rr)
	})
}

func (s *HandlerSuite) TestJoin() {
	s.service.EXPECT().JoinWithAccessCode(gomock.Any(), "VVVV2222", models.Identity{Email: "v@acme.test", Name: "Vee"}).
		Return(joinResult(models.RoleVoter), nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/organizations/join",
		map[string]any{"access_code": "vvvv2222", "email": "v@acme.test", "name": " Vee "})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	s.Equal("voter", testutil.Data(s.T(), rr)["role"])
	s.NotContains(testutil.Data(s.T(), rr), "voter_access_code")
}

func (s *HandlerSuite) TestDeactivateMember() {
	actor := id.NewUserID()
	orgID := id.NewOrganizationID()
	member := id.NewUserID()

	s.service.EXPECT().DeactivateMember(gomock.Any(), actor, orgID, member).Return(nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/organizations/members/deactivate", map[string]any{"user_id": member.String()})
	rr := testutil.DoRequest(s.router, testutil.WithMember(req, actor, orgID, "admin"))
	testutil.AssertStatusOK(s.T(), rr)
}
