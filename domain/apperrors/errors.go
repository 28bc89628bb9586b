// Package apperrors defines the sentinel errors shared across service and
// transport layers. Services wrap these with context; handlers map them to
// HTTP responses with errors.Is.
package apperrors

import "errors"

// Identity boundary.
var (
	ErrInvalidIdentifier = errors.New("invalid email address")
	ErrAccountExists     = errors.New("email already registered")
	ErrAccountNotFound   = errors.New("account not found")
	ErrWrongCredential   = errors.New("invalid email or password")
	ErrWeakCredential    = errors.New("password must be at least 6 characters")
	ErrRateLimited       = errors.New("too many sign-in attempts, try again later")
	ErrIdentityProvider  = errors.New("identity provider failure")
)

// Task boundary.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidMutation = errors.New("update touches an immutable field")
	ErrWriteFailed     = errors.New("write failed")
)
