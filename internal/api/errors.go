// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"net/http"

	"github.com/casemadad/courtflow/internal/domain"
	"github.com/casemadad/courtflow/internal/service/auth"
	"github.com/casemadad/courtflow/internal/service/scheduling"
	"github.com/casemadad/courtflow/internal/service/similarity"
	"github.com/casemadad/courtflow/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, scheduling.ErrCaseNotFound),
		errors.Is(err, similarity.ErrCaseNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, scheduling.ErrEmptySchedule),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Invalid refresh token"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCaseNotFound),
		errors.Is(err, scheduling.ErrCaseNotFound),
		errors.Is(err, similarity.ErrCaseNotFound):
		return "Case not found"

	case errors.Is(err, store.ErrDocumentNotFound):
		return "Document not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrCaseNumberExists):
		return "Case number already exists"

	// Bad request errors
	case errors.Is(err, scheduling.ErrEmptySchedule):
		return "No schedule provided"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	// Default: generic message that doesn't leak details
	default:
		return "An unexpected error occurred"
	}
}
