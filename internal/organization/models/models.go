package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	id "quorum/pkg/domain"
	dErrors "quorum/pkg/domain-errors"
	"quorum/pkg/platform/sentinel"
)

// Role is a member's standing within one organization.
type Role string

const (
	RoleVoter Role = "voter"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleVoter, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// CanManage reports whether r may issue or revoke invitations and run elections.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleOwner
}

// ParseInvitableRole accepts the roles an invitation may grant.
func ParseInvitableRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleVoter, RoleAdmin:
		return r, nil
	case "":
		return RoleVoter, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "role must be voter or admin")
}

// JoinedVia records how a membership came to exist.
type JoinedVia string

const (
	JoinedViaAccessCode           JoinedVia = "access_code"
	JoinedViaInvitation           JoinedVia = "invitation"
	JoinedViaOrganizationCreation JoinedVia = "organization_creation"
)

// Store errors shared by the memory and PostgreSQL implementations.
var (
	ErrSlugTaken       = fmt.Errorf("organization slug taken: %w", sentinel.ErrAlreadyUsed)
	ErrAccessCodeTaken = fmt.Errorf("access code taken: %w", sentinel.ErrAlreadyUsed)
	ErrEmailTaken      = fmt.Errorf("email taken: %w", sentinel.ErrAlreadyUsed)
	ErrAlreadyMember   = fmt.Errorf("membership exists: %w", sentinel.ErrAlreadyUsed)
)

// Organization is a tenant. Slug is derived from Name once and never changes.
type Organization struct {
	ID              id.OrganizationID `json:"id"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	VoterAccessCode string            `json:"-"`
	AdminAccessCode string            `json:"-"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"`
}

// RoleForAccessCode returns the role a standing code grants.
func (o *Organization) RoleForAccessCode(code string) (Role, bool) {
	switch code {
	case o.VoterAccessCode:
		return RoleVoter, true
	case o.AdminAccessCode:
		return RoleAdmin, true
	}
	return "", false
}

const maxNameLength = 128

// NewOrganization validates name and derives the slug.
func NewOrganization(orgID id.OrganizationID, name, voterCode, adminCode string, now time.Time) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "organization name is required")
	}
	if len(name) > maxNameLength {
		return nil, dErrors.New(dErrors.CodeValidation, "organization name must be 128 characters or less")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "organization name must contain letters or digits")
	}
	return &Organization{
		ID:              orgID,
		Name:            name,
		Slug:            slug,
		VoterAccessCode: voterCode,
		AdminAccessCode: adminCode,
		IsActive:        true,
		CreatedAt:       now,
	}, nil
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases name, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims hyphens from both ends.
func Slugify(name string) string {
	return strings.Trim(nonSlugRun.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// User is a person known by email. PasswordHash is only set for owners.
type User struct {
	ID           id.UserID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Membership binds a user to a role in one organization.
type Membership struct {
	ID             id.MembershipID   `json:"id"`
	UserID         id.UserID         `json:"user_id"`
	OrganizationID id.OrganizationID `json:"organization_id"`
	Role           Role              `json:"role"`
	JoinedVia      JoinedVia         `json:"joined_via"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Identity is the caller-supplied identity presented when joining.
type Identity struct {
	Email string
	Name  string
}

// JoinResult is returned by every admission path.
type JoinResult struct {
	Organization *Organization
	User         *User
	Membership   *Membership
	Role         Role
}

// SessionGrant is the bearer session handed to a new owner.
type SessionGrant struct {
	Token     string
	ExpiresAt time.Time
}

// OwnerRegistration carries everything needed to create an organization.
type OwnerRegistration struct {
	OrganizationName string
	OwnerName        string
	OwnerEmail       string
	OwnerPassword    string
}

// CreatedOrganization is the outcome of organization creation. Session is nil
// and LoginRequired is set when the session could not be issued.
type CreatedOrganization struct {
	JoinResult
	Session       *SessionGrant
	LoginRequired bool
}
