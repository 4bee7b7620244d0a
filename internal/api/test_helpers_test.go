package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/casemadad/courtflow/internal/api/shared"
	"github.com/casemadad/courtflow/internal/domain"
	"github.com/casemadad/courtflow/internal/service/auth"
	"github.com/casemadad/courtflow/internal/service/scheduling"
	"github.com/casemadad/courtflow/internal/service/similarity"
	"github.com/casemadad/courtflow/internal/store"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

// newJSONRequest builds a request with a JSON body, optional chi URL
// params and an optional authenticated user in the context.
func newJSONRequest(
	t *testing.T,
	method, target string,
	body interface{},
	userID uuid.UUID,
	urlParams map[string]string,
) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	ctx := req.Context()

	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, shared.UserIDContextKey, userID)
	}

	if len(urlParams) > 0 {
		routeCtx := chi.NewRouteContext()
		for k, v := range urlParams {
			routeCtx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// mockUserStore is an in-memory UserStore.
type mockUserStore struct {
	users     map[uuid.UUID]*domain.User
	createErr error
}

var _ store.UserStore = (*mockUserStore)(nil)

func newMockUserStore(users ...*domain.User) *mockUserStore {
	m := &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) Create(_ context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// mockCaseStore is an in-memory CaseStore.
type mockCaseStore struct {
	cases     map[uuid.UUID]*domain.Case
	order     []uuid.UUID
	createErr error
	listErr   error
}

var _ store.CaseStore = (*mockCaseStore)(nil)

func newMockCaseStore(cases ...*domain.Case) *mockCaseStore {
	m := &mockCaseStore{cases: make(map[uuid.UUID]*domain.Case)}
	for _, c := range cases {
		m.cases[c.ID] = c
		m.order = append(m.order, c.ID)
	}
	return m
}

func (m *mockCaseStore) Create(_ context.Context, c *domain.Case) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.cases {
		if existing.CaseNumber == c.CaseNumber {
			return store.ErrCaseNumberExists
		}
	}
	m.cases[c.ID] = c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *mockCaseStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, store.ErrCaseNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockCaseStore) List(_ context.Context, offset, limit int) ([]*domain.Case, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	total := len(m.order)
	out := make([]*domain.Case, 0, limit)
	for i := offset; i < total && len(out) < limit; i++ {
		out = append(out, m.cases[m.order[i]])
	}
	return out, total, nil
}

func (m *mockCaseStore) Save(_ context.Context, c *domain.Case) error {
	if _, ok := m.cases[c.ID]; !ok {
		return store.ErrCaseNotFound
	}
	copied := *c
	m.cases[c.ID] = &copied
	return nil
}

func (m *mockCaseStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.cases[id]; !ok {
		return store.ErrCaseNotFound
	}
	delete(m.cases, id)
	return nil
}

func (m *mockCaseStore) ListUnscheduled(_ context.Context) ([]*domain.Case, error) {
	var out []*domain.Case
	for _, id := range m.order {
		if c, ok := m.cases[id]; ok && c.ScheduledDate == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCaseStore) ApplyAssignment(_ context.Context, id uuid.UUID, a store.ScheduleAssignment) (*domain.Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, store.ErrCaseNotFound
	}
	date := a.ScheduledDate
	judge := a.AssignedJudge
	c.ScheduledDate = &date
	c.ScheduledTime = a.ScheduledTime
	c.CourtRoom = a.CourtRoom
	c.Priority = a.Priority
	c.EstimatedDuration = a.EstimatedDuration
	c.AssignedJudge = &judge
	c.Status = domain.CaseStatusScheduled
	copied := *c
	return &copied, nil
}

func (m *mockCaseStore) ListByJudgeBetween(_ context.Context, judgeID uuid.UUID, start, end time.Time) ([]*domain.Case, error) {
	var out []*domain.Case
	for _, id := range m.order {
		c, ok := m.cases[id]
		if !ok || c.AssignedJudge == nil || *c.AssignedJudge != judgeID || c.ScheduledDate == nil {
			continue
		}
		if c.ScheduledDate.Before(start) || c.ScheduledDate.After(end) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCaseStore) ListSimilarCandidates(_ context.Context, _ *domain.Case, _ int) ([]*domain.Case, error) {
	return nil, nil
}

// mockDocumentStore is an in-memory DocumentStore.
type mockDocumentStore struct {
	docs map[uuid.UUID]*domain.Document
}

var _ store.DocumentStore = (*mockDocumentStore)(nil)

func newMockDocumentStore(docs ...*domain.Document) *mockDocumentStore {
	m := &mockDocumentStore{docs: make(map[uuid.UUID]*domain.Document)}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func (m *mockDocumentStore) Create(_ context.Context, doc *domain.Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockDocumentStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Document, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, store.ErrDocumentNotFound
	}
	return d, nil
}

func (m *mockDocumentStore) ListByCase(_ context.Context, caseID uuid.UUID) ([]*domain.Document, error) {
	var out []*domain.Document
	for _, d := range m.docs {
		if d.CaseID == caseID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDocumentStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.docs, id)
	return nil
}

// mockSchedulingService returns canned results per operation.
type mockSchedulingService struct {
	buildResult   *scheduling.BuildResult
	applyReport   *scheduling.ApplyReport
	calendarView  *scheduling.CalendarView
	rescheduled   *domain.Case
	autoErr       error
	applyErr      error
	calendarErr   error
	rescheduleErr error

	lastStart   time.Time
	lastNumDays int
	lastJudgeID uuid.UUID
}

var _ scheduling.Service = (*mockSchedulingService)(nil)

func (m *mockSchedulingService) AutoSchedule(_ context.Context, start time.Time, numDays int) (*scheduling.BuildResult, error) {
	m.lastStart = start
	m.lastNumDays = numDays
	if m.autoErr != nil {
		return nil, m.autoErr
	}
	return m.buildResult, nil
}

func (m *mockSchedulingService) ApplySchedule(_ context.Context, items []scheduling.ScheduleItem, actingJudgeID uuid.UUID) (*scheduling.ApplyReport, error) {
	m.lastJudgeID = actingJudgeID
	if len(items) == 0 {
		return nil, scheduling.ErrEmptySchedule
	}
	if m.applyErr != nil {
		return nil, m.applyErr
	}
	return m.applyReport, nil
}

func (m *mockSchedulingService) JudgeCalendar(_ context.Context, judgeID uuid.UUID, start, end time.Time) (*scheduling.CalendarView, error) {
	m.lastJudgeID = judgeID
	if m.calendarErr != nil {
		return nil, m.calendarErr
	}
	return m.calendarView, nil
}

func (m *mockSchedulingService) Reschedule(_ context.Context, caseID uuid.UUID, newDate time.Time, newTime, courtRoom, reason string) (*domain.Case, error) {
	if m.rescheduleErr != nil {
		return nil, m.rescheduleErr
	}
	return m.rescheduled, nil
}

// mockSimilarityService returns a canned similar-case list.
type mockSimilarityService struct {
	results []similarity.SimilarCase
	err     error
}

var _ similarity.Service = (*mockSimilarityService)(nil)

func (m *mockSimilarityService) Similar(_ context.Context, _ uuid.UUID) ([]similarity.SimilarCase, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

// stubPasswordVerifier avoids bcrypt cost in handler tests.
type stubPasswordVerifier struct{}

var _ auth.PasswordVerifier = (*stubPasswordVerifier)(nil)

func (stubPasswordVerifier) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubPasswordVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errPasswordMismatch
	}
	return nil
}

var errPasswordMismatch = errors.New("password mismatch")

// stubJWTService issues predictable tokens.
type stubJWTService struct {
	validateErr error
	userID      uuid.UUID
}

var _ auth.JWTService = (*stubJWTService)(nil)

func (s *stubJWTService) GenerateToken(_ context.Context, userID uuid.UUID) (string, error) {
	return "access-" + userID.String(), nil
}

func (s *stubJWTService) GenerateRefreshToken(_ context.Context, userID uuid.UUID) (string, error) {
	return "refresh-" + userID.String(), nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &auth.Claims{UserID: s.userID, TokenType: "access"}, nil
}

func (s *stubJWTService) ValidateRefreshToken(_ context.Context, _ string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &auth.Claims{UserID: s.userID, TokenType: "refresh"}, nil
}
