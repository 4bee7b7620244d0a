package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casemadad/courtflow/internal/domain"
)

func newCaseForTest(t *testing.T, caseNumber, title string) *domain.Case {
	t.Helper()
	c, err := domain.NewCase(caseNumber, title, "", uuid.New())
	require.NoError(t, err)
	return c
}

func newCaseHandlerForTest(cases *mockCaseStore, docs *mockDocumentStore) *CaseHandler {
	if docs == nil {
		docs = newMockDocumentStore()
	}
	return NewCaseHandler(cases, docs, testLogger())
}

func TestCreateCaseSuccess(t *testing.T) {
	t.Parallel()

	cases := newMockCaseStore()
	handler := newCaseHandlerForTest(cases, nil)
	userID := uuid.New()

	req := newJSONRequest(t, http.MethodPost, "/api/cases", CreateCaseRequest{
		CaseNumber:  "CRM-2024-001",
		Title:       "State v. Sharma",
		Description: "Criminal matter",
		IPCTags:     []string{"IPC 302"},
	}, userID, nil)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[domain.Case](t, rec)
	assert.Equal(t, "CRM-2024-001", created.CaseNumber)
	assert.Equal(t, domain.CaseStatusPending, created.Status)
	assert.Equal(t, userID, created.CreatedBy)
	assert.Equal(t, []string{"IPC 302"}, created.IPCTags)

	_, err := cases.GetByID(req.Context(), created.ID)
	assert.NoError(t, err)
}

func TestCreateCaseDuplicateNumber(t *testing.T) {
	t.Parallel()

	existing := newCaseForTest(t, "CRM-2024-001", "State v. Sharma")
	handler := newCaseHandlerForTest(newMockCaseStore(existing), nil)

	req := newJSONRequest(t, http.MethodPost, "/api/cases", CreateCaseRequest{
		CaseNumber: "CRM-2024-001",
		Title:      "Another matter",
	}, uuid.New(), nil)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeBody[map[string]interface{}](t, rec)
	assert.Equal(t, "Case number already exists", resp["error"])
}

func TestCreateCaseRequiresAuthContext(t *testing.T) {
	t.Parallel()

	handler := newCaseHandlerForTest(newMockCaseStore(), nil)

	req := newJSONRequest(t, http.MethodPost, "/api/cases", CreateCaseRequest{
		CaseNumber: "CRM-2024-001",
		Title:      "State v. Sharma",
	}, uuid.Nil, nil)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListCasesPagination(t *testing.T) {
	t.Parallel()

	var all []*domain.Case
	for i := 0; i < 5; i++ {
		all = append(all, newCaseForTest(t, uuid.NewString(), "Case"))
	}
	handler := newCaseHandlerForTest(newMockCaseStore(all...), nil)

	req := newJSONRequest(t, http.MethodGet, "/api/cases?offset=2&limit=2", nil, uuid.New(), nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[CaseListResponse](t, rec)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 2, resp.Offset)
	assert.Equal(t, 2, resp.Limit)
	assert.Len(t, resp.Cases, 2)
}

func TestListCasesClampsLimit(t *testing.T) {
	t.Parallel()

	handler := newCaseHandlerForTest(newMockCaseStore(), nil)

	req := newJSONRequest(t, http.MethodGet, "/api/cases?limit=9999", nil, uuid.New(), nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[CaseListResponse](t, rec)
	assert.Equal(t, maxPageLimit, resp.Limit)
}

func TestGetCase(t *testing.T) {
	t.Parallel()

	c := newCaseForTest(t, "CRM-2024-002", "Bail application")
	handler := newCaseHandlerForTest(newMockCaseStore(c), nil)

	req := newJSONRequest(t, http.MethodGet, "/api/cases/"+c.ID.String(), nil, uuid.New(),
		map[string]string{"id": c.ID.String()})
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Case](t, rec)
	assert.Equal(t, c.ID, got.ID)
}

func TestGetCaseNotFound(t *testing.T) {
	t.Parallel()

	handler := newCaseHandlerForTest(newMockCaseStore(), nil)

	missing := uuid.New()
	req := newJSONRequest(t, http.MethodGet, "/api/cases/"+missing.String(), nil, uuid.New(),
		map[string]string{"id": missing.String()})
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCaseInvalidID(t *testing.T) {
	t.Parallel()

	handler := newCaseHandlerForTest(newMockCaseStore(), nil)

	req := newJSONRequest(t, http.MethodGet, "/api/cases/not-a-uuid", nil, uuid.New(),
		map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCasePartialFields(t *testing.T) {
	t.Parallel()

	c := newCaseForTest(t, "CRM-2024-003", "Original title")
	c.Description = "Original description"
	cases := newMockCaseStore(c)
	handler := newCaseHandlerForTest(cases, nil)

	newTitle := "Amended title"
	newStatus := "processing"
	req := newJSONRequest(t, http.MethodPut, "/api/cases/"+c.ID.String(), UpdateCaseRequest{
		Title:   &newTitle,
		Status:  &newStatus,
		IPCTags: []string{"IPC 420"},
	}, uuid.New(), map[string]string{"id": c.ID.String()})
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[domain.Case](t, rec)
	assert.Equal(t, "Amended title", updated.Title)
	assert.Equal(t, domain.CaseStatusProcessing, updated.Status)
	assert.Equal(t, []string{"IPC 420"}, updated.IPCTags)

	// Absent fields are untouched.
	assert.Equal(t, "Original description", updated.Description)

	stored, err := cases.GetByID(req.Context(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amended title", stored.Title)
}

func TestUpdateCaseInvalidStatus(t *testing.T) {
	t.Parallel()

	c := newCaseForTest(t, "CRM-2024-003", "Original title")
	handler := newCaseHandlerForTest(newMockCaseStore(c), nil)

	badStatus := "archived"
	req := newJSONRequest(t, http.MethodPut, "/api/cases/"+c.ID.String(), UpdateCaseRequest{
		Status: &badStatus,
	}, uuid.New(), map[string]string{"id": c.ID.String()})
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCase(t *testing.T) {
	t.Parallel()

	c := newCaseForTest(t, "CRM-2024-004", "To be deleted")
	cases := newMockCaseStore(c)
	handler := newCaseHandlerForTest(cases, nil)

	req := newJSONRequest(t, http.MethodDelete, "/api/cases/"+c.ID.String(), nil, uuid.New(),
		map[string]string{"id": c.ID.String()})
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := cases.GetByID(req.Context(), c.ID)
	assert.Error(t, err)
}

func TestDeleteCaseNotFound(t *testing.T) {
	t.Parallel()

	handler := newCaseHandlerForTest(newMockCaseStore(), nil)

	missing := uuid.New()
	req := newJSONRequest(t, http.MethodDelete, "/api/cases/"+missing.String(), nil, uuid.New(),
		map[string]string{"id": missing.String()})
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListDocuments(t *testing.T) {
	t.Parallel()

	c := newCaseForTest(t, "CRM-2024-005", "Documented case")
	doc, err := domain.NewDocument(c.ID, "fir-scan.pdf", "FIR Scan.pdf", "application/pdf", 2048, uuid.New())
	require.NoError(t, err)
	unrelated, err := domain.NewDocument(uuid.New(), "other.pdf", "Other.pdf", "application/pdf", 100, uuid.New())
	require.NoError(t, err)

	handler := newCaseHandlerForTest(newMockCaseStore(c), newMockDocumentStore(doc, unrelated))

	req := newJSONRequest(t, http.MethodGet, "/api/cases/"+c.ID.String()+"/documents", nil, uuid.New(),
		map[string]string{"id": c.ID.String()})
	rec := httptest.NewRecorder()

	handler.ListDocuments(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	docs := decodeBody[[]DocumentResponse](t, rec)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)
	assert.Equal(t, "fir-scan.pdf", docs[0].Filename)
	assert.Equal(t, int64(2048), docs[0].SizeBytes)
}

func TestListDocumentsUnknownCase(t *testing.T) {
	t.Parallel()

	handler := newCaseHandlerForTest(newMockCaseStore(), nil)

	missing := uuid.New()
	req := newJSONRequest(t, http.MethodGet, "/api/cases/"+missing.String()+"/documents", nil, uuid.New(),
		map[string]string{"id": missing.String()})
	rec := httptest.NewRecorder()

	handler.ListDocuments(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
