package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: row does not exist
//   - ErrAlreadyUsed: a unique key (slug, email, membership pair) is taken
//   - ErrConflict: a conditional update lost its compare-and-swap
//   - ErrExpired: token, code or session is past its expiry
//   - ErrInvalidState: row is in the wrong state for the requested transition
//   - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
