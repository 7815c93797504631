package handler

import (
	"time"

	"quorum/internal/organization/models"
)

type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// JoinResponse describes the membership created by any admission path.
type JoinResponse struct {
	Organization OrganizationResponse `json:"organization"`
	UserID       string               `json:"user_id"`
	MembershipID string               `json:"membership_id"`
	Role         string               `json:"role"`
}

// CreateOrganizationResponse also carries the access codes, which only an
// owner ever sees.
type CreateOrganizationResponse struct {
	JoinResponse
	VoterAccessCode  string     `json:"voter_access_code"`
	AdminAccessCode  string     `json:"admin_access_code"`
	SessionToken     string     `json:"session_token,omitempty"`
	SessionExpiresAt *time.Time `json:"session_expires_at,omitempty"`
	LoginRequired    bool       `json:"login_required"`
}

type InvitationResponse struct {
	Token      string    `json:"token"`
	Role       string    `json:"role"`
	Email      string    `json:"email,omitempty"`
	UsageLimit int       `json:"usage_limit"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func toJoinResponse(r *models.JoinResult) JoinResponse {
	return JoinResponse{
		Organization: OrganizationResponse{
			ID:   r.Organization.ID.String(),
			Name: r.Organization.Name,
			Slug: r.Organization.Slug,
		},
		UserID:       r.User.ID.String(),
		MembershipID: r.Membership.ID.String(),
		Role:         string(r.Role),
	}
}

func toCreateOrganizationResponse(r *models.CreatedOrganization) CreateOrganizationResponse {
	resp := CreateOrganizationResponse{
		JoinResponse:    toJoinResponse(&r.JoinResult),
		VoterAccessCode: r.Organization.VoterAccessCode,
		AdminAccessCode: r.Organization.AdminAccessCode,
		LoginRequired:   r.LoginRequired,
	}
	if r.Session != nil {
		resp.SessionToken = r.Session.Token
		expires := r.Session.ExpiresAt
		resp.SessionExpiresAt = &expires
	}
	return resp
}

func toInvitationResponse(i *models.IssuedInvitation) InvitationResponse {
	return InvitationResponse{
		Token:      i.Token,
		Role:       string(i.Invitation.Role),
		Email:      i.Invitation.Email,
		UsageLimit: i.Invitation.UsageLimit,
		ExpiresAt:  i.Invitation.ExpiresAt,
	}
}
