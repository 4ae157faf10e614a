package domain

import "errors"

// Authentication-stage failures. ErrTokenExpired is deliberately distinct
// from ErrTokenInvalid so callers can tell "log in again" apart from a
// malformed or tampered token.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authorization-stage failures.
var (
	ErrInsufficientRole        = errors.New("insufficient role")
	ErrForbiddenOperation      = errors.New("operation not permitted")
	ErrForbiddenRoleAssignment = errors.New("role assignment not permitted")
)

// Data and input failures.
var (
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAuditEntryNotFound  = errors.New("audit entry not found")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrBadRequest          = errors.New("bad request")
)
