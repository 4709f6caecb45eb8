package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRateLimited        = errors.New("too many requests")

	// Authentication succeeded but no profile row exists for the identity.
	// Treated as fail-closed: the caller gets no session.
	ErrProfileMissing = errors.New("profile not found for identity")

	// Membership state errors
	ErrMembershipPending  = errors.New("membership awaiting approval")
	ErrMembershipRejected = errors.New("membership rejected")
)
