package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/api/middleware"
	"github.com/casemadad/courtflow/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's ID from the
// request context. Returns domain.ErrUnauthorized when the middleware has
// not stored a valid user ID, which indicates a routing misconfiguration
// rather than a client error.
func getUserIDFromContext(r *http.Request) (uuid.UUID, error) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// getPathUUID parses the named chi URL parameter as a UUID.
func getPathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q is not a valid UUID", domain.ErrInvalidID, raw)
	}
	return id, nil
}
