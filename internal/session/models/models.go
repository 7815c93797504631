// Package models defines bearer sessions.
package models

import (
	"time"

	id "quorum/pkg/domain"
)

// Session binds a bearer token to one membership. Only TokenDigest is stored;
// the token itself is returned once at issue time.
type Session struct {
	ID             id.SessionID
	TokenDigest    string
	UserID         id.UserID
	OrganizationID id.OrganizationID
	CreatedAt      time.Time
	ExpiresAt      time.Time
	IPAddress      string
	UserAgent      string
	DeviceLabel    string
	IsActive       bool
	RevokedAt      *time.Time
}

// ExpiredAt reports whether the session has outlived ttl at now. Expiry is
// measured from creation; validation never extends it.
func (s *Session) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}

// Issued is returned to the caller of Issue and Login.
type Issued struct {
	Token   string
	Session *Session
	Role    string
}

// Member is the session context's view of an organization membership.
type Member struct {
	Role     string
	IsActive bool
}
