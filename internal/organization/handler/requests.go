package handler

import (
	"strings"

	"quorum/pkg/email"
)

// CreateOrganizationRequest is the body of POST /organizations/create.
type CreateOrganizationRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,max=128"`
	OwnerName        string `json:"owner_name" validate:"required,max=128"`
	OwnerEmail       string `json:"owner_email" validate:"required,email,max=254"`
	OwnerPassword    string `json:"owner_password" validate:"required,min=8,max=72"`
}

func (r *CreateOrganizationRequest) Normalize() {
	r.OrganizationName = strings.TrimSpace(r.OrganizationName)
	r.OwnerName = strings.TrimSpace(r.OwnerName)
	r.OwnerEmail = email.Normalize(r.OwnerEmail)
}

// JoinRequest is the body of POST /organizations/join.
type JoinRequest struct {
	AccessCode string `json:"access_code" validate:"required,max=64"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Name       string `json:"name" validate:"max=128"`
}

func (r *JoinRequest) Normalize() {
	r.AccessCode = strings.ToUpper(strings.TrimSpace(r.AccessCode))
	r.Email = email.Normalize(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

// CreateInvitationRequest is the body of POST /invitations.
type CreateInvitationRequest struct {
	Role          string `json:"role" validate:"omitempty,oneof=voter admin"`
	Email         string `json:"email" validate:"omitempty,email,max=254"`
	ExpiresInDays int    `json:"expires_in_days" validate:"omitempty,min=1,max=365"`
	UsageLimit    int    `json:"usage_limit" validate:"omitempty,min=1,max=10000"`
}

func (r *CreateInvitationRequest) Normalize() {
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.Email = email.Normalize(r.Email)
}

// RedeemInvitationRequest is the body of POST /invitations/redeem.
type RedeemInvitationRequest struct {
	Token string `json:"token" validate:"required,max=256"`
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"max=128"`
}

func (r *RedeemInvitationRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
	r.Email = email.Normalize(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

// RevokeInvitationRequest is the body of POST /invitations/revoke.
type RevokeInvitationRequest struct {
	Token string `json:"token" validate:"required,max=256"`
}

func (r *RevokeInvitationRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
}

// DeactivateMemberRequest is the body of POST /organizations/members/deactivate.
type DeactivateMemberRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}
