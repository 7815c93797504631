package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"quorum/internal/otp/handler/mocks"
	"quorum/internal/otp/models"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/testutil"
)

func newRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r, passthrough)
	return r, svc
}

func TestSendOTP(t *testing.T) {
	testutil.Given(t, "a send-otp request", func(t *testing.T) {
		testutil.When(t, "delivery succeeds", func(t *testing.T) {
			r, svc := newRouter(t)
			svc.EXPECT().Issue(gomock.Any(), "v@x.com").
				Return(&models.Issued{Email: "v@x.com", ExpiresAt: time.Now()}, nil)

			rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/organizations/send-otp", map[string]any{"email": "V@x.com"}))
			testutil.Then(t, "200 with the expiry", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				testutil.AssertJSONHasKey(t, rr, "data")
			})
		})

		testutil.When(t, "delivery fails", func(t *testing.T) {
			r, svc := newRouter(t)
			svc.EXPECT().Issue(gomock.Any(), "v@x.com").
				Return(&models.Issued{}, dErrors.New(dErrors.CodeDeliveryFailed, "could not send"))

			rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/organizations/send-otp", map[string]any{"email": "v@x.com"}))
			testutil.Then(t, "503 delivery_failed", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusServiceUnavailable, string(dErrors.CodeDeliveryFailed))
			})
		})
	})
}

func TestVerifyOTP(t *testing.T) {
	cases := []struct {
		name   string
		code   string
		err    error
		status int
	}{
		{name: "success", code: "123456", status: http.StatusOK},
		{name: "mismatch", code: "000000", err: dErrors.New(dErrors.CodeMismatch, "no"), status: http.StatusUnauthorized},
		{name: "expired", code: "123456", err: dErrors.New(dErrors.CodeExpired, "no"), status: http.StatusUnauthorized},
		{name: "locked", code: "123456", err: dErrors.New(dErrors.CodeTooManyAttempts, "no"), status: http.StatusUnauthorized},
		{name: "missing", code: "123456", err: dErrors.New(dErrors.CodeNotFound, "no"), status: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := newRouter(t)
			svc.EXPECT().Verify(gomock.Any(), "v@x.com", tc.code).Return(tc.err)

			rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/organizations/verify-otp",
				map[string]any{"email": "v@x.com", "code": tc.code}))
			testutil.AssertStatus(t, rr, tc.status)
		})
	}

	t.Run("non-numeric code is rejected before the service", func(t *testing.T) {
		r, _ := newRouter(t)
		rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/organizations/verify-otp",
			map[string]any{"email": "v@x.com", "code": "12ab56"}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}
