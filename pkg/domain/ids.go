// Package domain holds typed identifiers shared across modules.
//
// Every ID is a distinct named uuid.UUID so a UserID can never be passed
// where an ElectionID is expected.
package domain

import (
	"database/sql/driver"

	"github.com/google/uuid"

	dErrors "quorum/pkg/domain-errors"
)

type (
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	MembershipID   uuid.UUID
	SessionID      uuid.UUID
	ElectionID     uuid.UUID
	CandidateID    uuid.UUID
	VoteID         uuid.UUID
)

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id OrganizationID) String() string { return uuid.UUID(id).String() }
func (id MembershipID) String() string   { return uuid.UUID(id).String() }
func (id SessionID) String() string      { return uuid.UUID(id).String() }
func (id ElectionID) String() string     { return uuid.UUID(id).String() }
func (id CandidateID) String() string    { return uuid.UUID(id).String() }
func (id VoteID) String() string         { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id OrganizationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id MembershipID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ElectionID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id CandidateID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id VoteID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }

func NewUserID() UserID                 { return UserID(uuid.New()) }
func NewOrganizationID() OrganizationID { return OrganizationID(uuid.New()) }
func NewMembershipID() MembershipID     { return MembershipID(uuid.New()) }
func NewSessionID() SessionID           { return SessionID(uuid.New()) }
func NewElectionID() ElectionID         { return ElectionID(uuid.New()) }
func NewCandidateID() CandidateID       { return CandidateID(uuid.New()) }
func NewVoteID() VoteID                 { return VoteID(uuid.New()) }

// Value and Scan let typed IDs travel through database/sql unchanged.
func (id UserID) Value() (driver.Value, error)         { return uuid.UUID(id).Value() }
func (id OrganizationID) Value() (driver.Value, error) { return uuid.UUID(id).Value() }
func (id MembershipID) Value() (driver.Value, error)   { return uuid.UUID(id).Value() }
func (id SessionID) Value() (driver.Value, error)      { return uuid.UUID(id).Value() }
func (id ElectionID) Value() (driver.Value, error)     { return uuid.UUID(id).Value() }
func (id CandidateID) Value() (driver.Value, error)    { return uuid.UUID(id).Value() }
func (id VoteID) Value() (driver.Value, error)         { return uuid.UUID(id).Value() }

func (id *UserID) Scan(src any) error         { return (*uuid.UUID)(id).Scan(src) }
func (id *OrganizationID) Scan(src any) error { return (*uuid.UUID)(id).Scan(src) }
func (id *MembershipID) Scan(src any) error   { return (*uuid.UUID)(id).Scan(src) }
func (id *SessionID) Scan(src any) error      { return (*uuid.UUID)(id).Scan(src) }
func (id *ElectionID) Scan(src any) error     { return (*uuid.UUID)(id).Scan(src) }
func (id *CandidateID) Scan(src any) error    { return (*uuid.UUID)(id).Scan(src) }
func (id *VoteID) Scan(src any) error         { return (*uuid.UUID)(id).Scan(src) }

// MarshalText and UnmarshalText render IDs as canonical UUID strings in JSON
// and CBOR.
func (id UserID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id OrganizationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id MembershipID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id SessionID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id ElectionID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id CandidateID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id VoteID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error         { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *OrganizationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *MembershipID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SessionID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ElectionID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CandidateID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *VoteID) UnmarshalText(b []byte) error         { return (*uuid.UUID)(id).UnmarshalText(b) }

// parseUUID enforces the trust-boundary invariant: IDs are valid, non-nil UUIDs.
func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "invalid "+kind)
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user id", s)
	return UserID(u), err
}

func ParseOrganizationID(s string) (OrganizationID, error) {
	u, err := parseUUID("organization id", s)
	return OrganizationID(u), err
}

func ParseElectionID(s string) (ElectionID, error) {
	u, err := parseUUID("election id", s)
	return ElectionID(u), err
}

func ParseCandidateID(s string) (CandidateID, error) {
	u, err := parseUUID("candidate id", s)
	return CandidateID(u), err
}

func ParseVoteID(s string) (VoteID, error) {
	u, err := parseUUID("vote id", s)
	return VoteID(u), err
}
