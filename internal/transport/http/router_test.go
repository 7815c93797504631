package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	ballothandler "quorum/internal/ballot/handler"
	ballotmocks "quorum/internal/ballot/handler/mocks"
	cleanuphandler "quorum/internal/cleanup/handler"
	cleanupmocks "quorum/internal/cleanup/handler/mocks"
	"quorum/internal/cleanup/models"
	orghandler "quorum/internal/organization/handler"
	orgmocks "quorum/internal/organization/handler/mocks"
	otphandler "quorum/internal/otp/handler"
	otpmocks "quorum/internal/otp/handler/mocks"
	"quorum/internal/platform/metrics"
	sessionhandler "quorum/internal/session/handler"
	sessionmocks "quorum/internal/session/handler/mocks"
	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/middleware/admin"
	"quorum/pkg/platform/middleware/request"
	"quorum/pkg/requestcontext"
	"quorum/pkg/testutil"
)

type validatorFunc func(ctx context.Context, token string) (requestcontext.Principal, error)

func (f validatorFunc) Validate(ctx context.Context, token string) (requestcontext.Principal, error) {
	return f(ctx, token)
}

type RouterSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	scheduler *cleanupmocks.MockScheduler
	registry  *prometheus.Registry
	principal requestcontext.Principal
	health    map[string]HealthCheck
	router    http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.scheduler = cleanupmocks.NewMockScheduler(s.ctrl)
	s.registry = prometheus.NewRegistry()
	s.principal = requestcontext.Principal{
		UserID:         id.NewUserID(),
		OrganizationID: id.NewOrganizationID(),
		SessionID:      id.NewSessionID(),
		Role:           "voter",
	}
	s.health = map[string]HealthCheck{}
	s.router = s.newRouter()
}

// newRouter registers metrics on s.registry, so it runs once per test.
func (s *RouterSuite) newRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := Handlers{
		Organizations: orghandler.New(orgmocks.NewMockService(s.ctrl), logger),
		OTP:           otphandler.New(otpmocks.NewMockService(s.ctrl), logger),
		Sessions:      sessionhandler.New(sessionmocks.NewMockService(s.ctrl), logger),
		Ballots:       ballothandler.New(ballotmocks.NewMockService(s.ctrl), logger),
		Cleanup:       cleanuphandler.New(s.scheduler, logger),
	}
	return NewRouter(handlers, Deps{
		Logger:   logger,
		Metrics:  metrics.New(s.registry),
		Gatherer: s.registry,
		Sessions: validatorFunc(func(_ context.Context, token string) (requestcontext.Principal, error) {
			if token != "good" {
				return requestcontext.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "invalid session")
			}
			return s.principal, nil
		}),
		AdminToken: "operator",
		Health:     s.health,
	})
}

func (s *RouterSuite) TestHealth() {
	s.Run("ok with no failing dependencies", func() {
		s.health["database"] = func(context.Context) error { return nil }
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "status", "ok")
	})

	s.Run("503 when a dependency is down", func() {
		s.health["redis"] = func(context.Context) error { return errors.New("connection refused") }
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
		testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
		testutil.AssertJSONContains(s.T(), rr, "status", "degraded")
	})
}

func (s *RouterSuite) TestRequestIDIsEchoed() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/healthz")
	req.Header.Set(request.HeaderRequestID, "req-123")
	rr := testutil.DoRequest(s.router, req)
	s.Equal("req-123", rr.Header().Get(request.HeaderRequestID))
}

func (s *RouterSuite) TestMetricsExposeRouteCounters() {
	testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(s.T(), rr)
	s.True(strings.Contains(rr.Body.String(), `quorum_http_requests_total{method="GET",route="/healthz",status="200"}`))
}

func (s *RouterSuite) TestProtectedRoutesNeedASession() {
	s.Run("missing bearer", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/sessions/me"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})

	s.Run("invalid bearer", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/sessions/me")
		req.Header.Set("Authorization", "Bearer stale")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("valid bearer resolves the principal", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/sessions/me")
		req.Header.Set("Authorization", "Bearer good")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		s.Equal(s.principal.UserID.String(), testutil.Data(s.T(), rr)["user_id"])
	})
}

func (s *RouterSuite) TestElectionRoutesAreProtected() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/elections/"+id.NewElectionID().String()))
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
}

func (s *RouterSuite) TestAdminRoutes() {
	s.Run("rejected without the operator token", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/admin/cleanup/stats"))
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("served with the operator token", func() {
		s.scheduler.EXPECT().RecentRuns(gomock.Any(), 30).Return(nil, nil)
		s.scheduler.EXPECT().Stats().Return(models.Stats{Runs: 4})

		req := testutil.NewRequest(s.T(), http.MethodGet, "/admin/cleanup/stats")
		req.Header.Set(admin.HeaderAdminToken, "operator")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		s.EqualValues(4, testutil.Data(s.T(), rr)["runs"])
	})
}

func (s *RouterSuite) TestUnknownRoute() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/nope"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
}
