package services

import "errors"

// Sentinel errors services return; handlers map them to HTTP statuses.
var (
	// ErrEmailTaken means the email already has an account (409).
	ErrEmailTaken = errors.New("email already registered")
	// ErrBadCredentials covers unknown email and wrong password alike (401),
	// so a caller cannot probe which emails exist.
	ErrBadCredentials = errors.New("invalid email or password")
	// ErrNotFound covers both a missing record and a record owned by a
	// different subject (404, never 403).
	ErrNotFound = errors.New("not found")
)
