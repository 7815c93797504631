package testutil

import (
	"net/http"
	"time"

	id "quorum/pkg/domain"
	"quorum/pkg/requestcontext"
)

// WithPrincipal attaches an authenticated caller to the request, the way the
// session middleware would after validating a bearer token.
func WithPrincipal(req *http.Request, p requestcontext.Principal) *http.Request {
	return req.WithContext(requestcontext.WithPrincipal(req.Context(), p))
}

// WithMember is WithPrincipal for the common case of a caller with a role in
// one organization.
func WithMember(req *http.Request, userID id.UserID, orgID id.OrganizationID, role string) *http.Request {
	return WithPrincipal(req, requestcontext.Principal{
		UserID:         userID,
		OrganizationID: orgID,
		SessionID:      id.NewSessionID(),
		Role:           role,
	})
}

// WithTime pins the request clock.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
