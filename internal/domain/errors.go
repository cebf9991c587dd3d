package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the CloudLibrary server is unreachable
	ErrServerOffline = errors.New("cloudlibrary server is unreachable")

	// ErrAuthFailed indicates the credentials were rejected
	ErrAuthFailed = errors.New("invalid email or password")

	// ErrUserExists indicates a registration for an email that is already taken
	ErrUserExists = errors.New("an account with this email already exists")

	// ErrUnexpectedStatus indicates the server answered with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected server response")
)
