package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/casemadad/courtflow/internal/api/shared"
	"github.com/casemadad/courtflow/internal/service/similarity"
)

// SimilarHandler handles the case similarity endpoint.
type SimilarHandler struct {
	similarityService similarity.Service
	logger            *slog.Logger
}

// NewSimilarHandler creates a new SimilarHandler with the given dependencies.
func NewSimilarHandler(similarityService similarity.Service, log *slog.Logger) *SimilarHandler {
	if similarityService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("similarityService cannot be nil")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil")
	}

	return &SimilarHandler{
		similarityService: similarityService,
		logger:            log.With(slog.String("component", "similar_handler")),
	}
}

// Similar handles GET /api/cases/{caseID}/similar.
func (h *SimilarHandler) Similar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caseID, err := getPathUUID(r, "caseID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid case ID")
		return
	}

	similar, err := h.similarityService.Similar(ctx, caseID)
	if err != nil {
		if errors.Is(err, similarity.ErrCaseNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to find similar cases", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, similar)
}
