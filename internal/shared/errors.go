package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrConstraint indicates the store rejected a write (foreign key, unique or check).
	ErrConstraint = errors.New("constraint violation")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing, expired or revoked token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller's profile cannot reach the route.
	ErrForbidden = errors.New("forbidden")
)
