package services

import "errors"

// Business-rule and authentication errors surfaced to handlers. Handlers map
// them to HTTP statuses and error codes; anything else becomes a 500.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so login never leaks whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrAccessDenied       = errors.New("access denied")
	ErrAlreadyRegistered  = errors.New("user already registered for this expo")
	ErrExhibitorExists    = errors.New("exhibitor profile already exists for this user")
	ErrBoothExists        = errors.New("virtual booth already exists for this exhibitor")
	ErrNoUpdateFields     = errors.New("no fields to update")
	ErrInvalidDate        = errors.New("invalid date format")
)
