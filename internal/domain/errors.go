package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidCaseStatus is returned when a case status is not valid.
	ErrInvalidCaseStatus = errors.New("invalid case status")

	// ErrInvalidPriority is returned when a priority level is not valid.
	ErrInvalidPriority = errors.New("invalid priority level")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
