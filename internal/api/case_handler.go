package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/casemadad/courtflow/internal/api/shared"
	"github.com/casemadad/courtflow/internal/domain"
	"github.com/casemadad/courtflow/internal/platform/logger"
	"github.com/casemadad/courtflow/internal/store"
)

// Pagination bounds for case listing.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CaseHandler handles case CRUD endpoints.
type CaseHandler struct {
	caseStore     store.CaseStore
	documentStore store.DocumentStore
	logger        *slog.Logger
}

// NewCaseHandler creates a new CaseHandler with the given dependencies.
func NewCaseHandler(
	caseStore store.CaseStore,
	documentStore store.DocumentStore,
	log *slog.Logger,
) *CaseHandler {
	if caseStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("caseStore cannot be nil")
	}
	if documentStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("documentStore cannot be nil")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil")
	}

	return &CaseHandler{
		caseStore:     caseStore,
		documentStore: documentStore,
		logger:        log.With(slog.String("component", "case_handler")),
	}
}

// Create handles POST /api/cases.
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	userID, err := getUserIDFromContext(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateCaseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := domain.NewCase(req.CaseNumber, req.Title, req.Description, userID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.IPCTags) > 0 {
		c.IPCTags = req.IPCTags
	}
	if len(req.Entities) > 0 {
		c.Entities = req.Entities
	}

	if err := h.caseStore.Create(ctx, c); err != nil {
		if errors.Is(err, store.ErrCaseNumberExists) {
			shared.RespondWithError(w, r, http.StatusConflict, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create case", err)
		return
	}

	log.Info("case created",
		slog.String("case_id", c.ID.String()),
		slog.String("case_number", c.CaseNumber))

	shared.RespondWithJSON(w, r, http.StatusCreated, c)
}

// List handles GET /api/cases with offset/limit pagination.
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	offset := parseQueryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit := parseQueryInt(r, "limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	cases, total, err := h.caseStore.List(ctx, offset, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list cases", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CaseListResponse{
		Cases:  cases,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	})
}

// Get handles GET /api/cases/{id}.
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid case ID")
		return
	}

	c, err := h.caseStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get case", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, c)
}

// Update handles PUT /api/cases/{id}. Only the fields present in the
// request body are applied; everything else is left as stored.
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req UpdateCaseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.caseStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to update case", err)
		return
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Summary != nil {
		c.Summary = *req.Summary
	}
	if req.IPCTags != nil {
		c.IPCTags = req.IPCTags
	}
	if req.Entities != nil {
		c.Entities = req.Entities
	}
	if req.Status != nil {
		if err := c.UpdateStatus(domain.CaseStatus(*req.Status)); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}
	c.UpdatedAt = time.Now().UTC()

	if err := c.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.caseStore.Save(ctx, c); err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to update case", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, c)
}

// Delete handles DELETE /api/cases/{id}. Deleting a case also removes
// its document records via the store's cascade.
func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid case ID")
		return
	}

	if err := h.caseStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to delete case", err)
		return
	}

	log.Info("case deleted", slog.String("case_id", id.String()))

	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments handles GET /api/cases/{id}/documents.
func (h *CaseHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid case ID")
		return
	}

	// Distinguish an unknown case from a case with no documents.
	if _, err := h.caseStore.GetByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list documents", err)
		return
	}

	docs, err := h.documentStore.ListByCase(ctx, id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list documents", err)
		return
	}

	responses := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		responses = append(responses, DocumentResponse{
			ID:           d.ID,
			CaseID:       d.CaseID,
			Filename:     d.Filename,
			OriginalName: d.OriginalName,
			MimeType:     d.MimeType,
			SizeBytes:    d.SizeBytes,
			Status:       string(d.Status),
			UploadedBy:   d.UploadedBy,
			UploadedAt:   d.UploadedAt,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// parseQueryInt parses the named query parameter as an int, falling back
// to def when absent or malformed.
func parseQueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
