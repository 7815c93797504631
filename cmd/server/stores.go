package main

import (
	ballotservice "quorum/internal/ballot/service"
	ballotstore "quorum/internal/ballot/store"
	cleanupservice "quorum/internal/cleanup/service"
	cleanupstore "quorum/internal/cleanup/store"
	orgservice "quorum/internal/organization/service"
	invitationstore "quorum/internal/organization/store/invitation"
	membershipstore "quorum/internal/organization/store/membership"
	orgstore "quorum/internal/organization/store/organization"
	userstore "quorum/internal/organization/store/user"
	otpservice "quorum/internal/otp/service"
	otpstore "quorum/internal/otp/store"
	"quorum/internal/platform/postgres"
	sessionservice "quorum/internal/session/service"
	sessionstore "quorum/internal/session/store"
	"quorum/pkg/platform/tx"
)

type invitationStore interface {
	orgservice.InvitationStore
	cleanupservice.ExpiryPurger
}

type otpStore interface {
	otpservice.Store
	cleanupservice.ExpiryPurger
}

type sessionStore interface {
	sessionservice.Store
	cleanupservice.SessionPurger
}

// stores is one backend for every bounded context.
type stores struct {
	orgs        orgservice.OrganizationStore
	users       orgservice.UserStore
	memberships orgservice.MembershipStore
	invitations invitationStore
	otps        otpStore
	sessions    sessionStore
	ballots     ballotservice.Store
	cleanupRuns cleanupservice.RunLog
	tx          tx.Runner
}

func memoryStores() *stores {
	return &stores{
		orgs:        orgstore.NewInMemory(),
		users:       userstore.NewInMemory(),
		memberships: membershipstore.NewInMemory(),
		invitations: invitationstore.NewInMemory(),
		otps:        otpstore.NewInMemory(),
		sessions:    sessionstore.NewInMemory(),
		ballots:     ballotstore.NewInMemory(),
		cleanupRuns: cleanupstore.NewInMemory(),
		tx:          tx.NoTx{},
	}
}

func postgresStores(db *postgres.DB) *stores {
	return &stores{
		orgs:        orgstore.NewPostgres(db),
		users:       userstore.NewPostgres(db),
		memberships: membershipstore.NewPostgres(db),
		invitations: invitationstore.NewPostgres(db),
		otps:        otpstore.NewPostgres(db),
		sessions:    sessionstore.NewPostgres(db),
		ballots:     ballotstore.NewPostgres(db),
		cleanupRuns: cleanupstore.NewPostgres(db),
		tx:          db,
	}
}
