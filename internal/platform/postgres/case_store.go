package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
	"github.com/casemadad/courtflow/internal/platform/logger"
	"github.com/casemadad/courtflow/internal/store"
)

// caseColumns is the select list shared by all case queries. The
// document count is derived from the documents table so the entity
// always carries it.
const caseColumns = `
	c.id, c.case_number, c.title, c.description, c.summary, c.status,
	c.created_by, c.ipc_tags, c.entities,
	c.scheduled_date, c.scheduled_time, c.court_room, c.priority,
	c.estimated_duration, c.assigned_judge, c.previous_hearings,
	c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM documents d WHERE d.case_id = c.id) AS document_count
`

// PostgresCaseStore implements the store.CaseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCaseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCaseStore creates a new PostgreSQL implementation of the CaseStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCaseStore(db store.DBTX, log *slog.Logger) *PostgresCaseStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresCaseStore{
		db:     db,
		logger: log.With(slog.String("component", "case_store")),
	}
}

// Ensure PostgresCaseStore implements store.CaseStore interface
var _ store.CaseStore = (*PostgresCaseStore)(nil)

// Create implements store.CaseStore.Create
// Returns store.ErrCaseNumberExists if the case number is taken and
// store.ErrInvalidEntity if the creator does not exist.
func (s *PostgresCaseStore) Create(ctx context.Context, c *domain.Case) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Warn("case validation failed during create",
			slog.String("error", err.Error()),
			slog.String("case_id", c.ID.String()))
		return err
	}

	tags, err := json.Marshal(c.IPCTags)
	if err != nil {
		return fmt.Errorf("failed to marshal ipc tags: %w", err)
	}
	entities, err := json.Marshal(c.Entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entities: %w", err)
	}
	hearings, err := json.Marshal(c.PreviousHearings)
	if err != nil {
		return fmt.Errorf("failed to marshal previous hearings: %w", err)
	}

	query := `
		INSERT INTO cases (
			id, case_number, title, description, summary, status,
			created_by, ipc_tags, entities, estimated_duration,
			previous_hearings, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.CaseNumber,
		c.Title,
		c.Description,
		c.Summary,
		c.Status,
		c.CreatedBy,
		string(tags),
		string(entities),
		c.EstimatedDuration,
		string(hearings),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate case number during create",
				slog.String("case_number", c.CaseNumber))
			return store.ErrCaseNumberExists
		}
		log.Error("failed to create case",
			slog.String("error", err.Error()),
			slog.String("case_id", c.ID.String()))
		return MapError(err)
	}

	log.Info("case created successfully",
		slog.String("case_id", c.ID.String()),
		slog.String("case_number", c.CaseNumber))
	return nil
}

// GetByID implements store.CaseStore.GetByID
// Returns store.ErrCaseNotFound if the case does not exist.
func (s *PostgresCaseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases c WHERE c.id = $1`

	c, err := scanCase(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCaseNotFound
		}
		return nil, MapError(err)
	}

	return c, nil
}

// List implements store.CaseStore.List
func (s *PostgresCaseStore) List(ctx context.Context, offset, limit int) ([]*domain.Case, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cases`).Scan(&total); err != nil {
		return nil, 0, MapError(err)
	}

	query := `SELECT ` + caseColumns + `
		FROM cases c
		ORDER BY c.created_at DESC
		OFFSET $1 LIMIT $2`

	cases, err := s.queryCases(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	return cases, total, nil
}

// Save implements store.CaseStore.Save
// Returns store.ErrCaseNotFound if the case does not exist.
func (s *PostgresCaseStore) Save(ctx context.Context, c *domain.Case) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		log.Warn("case validation failed during save",
			slog.String("error", err.Error()),
			slog.String("case_id", c.ID.String()))
		return err
	}

	tags, err := json.Marshal(c.IPCTags)
	if err != nil {
		return fmt.Errorf("failed to marshal ipc tags: %w", err)
	}
	entities, err := json.Marshal(c.Entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entities: %w", err)
	}
	hearings, err := json.Marshal(c.PreviousHearings)
	if err != nil {
		return fmt.Errorf("failed to marshal previous hearings: %w", err)
	}

	query := `
		UPDATE cases SET
			title = $2, description = $3, summary = $4, status = $5,
			ipc_tags = $6, entities = $7,
			scheduled_date = $8, scheduled_time = $9, court_room = $10,
			priority = $11, estimated_duration = $12, assigned_judge = $13,
			previous_hearings = $14, updated_at = $15
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.Title,
		c.Description,
		c.Summary,
		c.Status,
		string(tags),
		string(entities),
		nullableTime(c.ScheduledDate),
		nullableString(c.ScheduledTime),
		nullableString(c.CourtRoom),
		nullableString(string(c.Priority)),
		c.EstimatedDuration,
		nullableUUID(c.AssignedJudge),
		string(hearings),
		c.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to save case",
			slog.String("error", err.Error()),
			slog.String("case_id", c.ID.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrCaseNotFound
	}

	return nil
}

// Delete implements store.CaseStore.Delete
// Document records are removed by the ON DELETE CASCADE rule on the
// documents table.
func (s *PostgresCaseStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete case",
			slog.String("error", err.Error()),
			slog.String("case_id", id.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrCaseNotFound
	}

	log.Info("case deleted", slog.String("case_id", id.String()))
	return nil
}

// ListUnscheduled implements store.CaseStore.ListUnscheduled
func (s *PostgresCaseStore) ListUnscheduled(ctx context.Context) ([]*domain.Case, error) {
	query := `SELECT ` + caseColumns + `
		FROM cases c
		WHERE c.scheduled_date IS NULL
		  AND c.status IN ('pending', 'processing')
		ORDER BY c.created_at DESC`

	return s.queryCases(ctx, query)
}

// ApplyAssignment implements store.CaseStore.ApplyAssignment
// Returns store.ErrCaseNotFound if the case does not exist.
func (s *PostgresCaseStore) ApplyAssignment(ctx context.Context, id uuid.UUID, a store.ScheduleAssignment) (*domain.Case, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		WITH updated AS (
			UPDATE cases SET
				scheduled_date = $2, scheduled_time = $3, court_room = $4,
				priority = $5, estimated_duration = $6, assigned_judge = $7,
				status = 'scheduled', updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + caseColumns + ` FROM updated c
	`
	c, err := scanCase(s.db.QueryRowContext(
		ctx,
		query,
		id,
		a.ScheduledDate,
		a.ScheduledTime,
		a.CourtRoom,
		string(a.Priority),
		a.EstimatedDuration,
		a.AssignedJudge,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCaseNotFound
		}
		log.Error("failed to apply schedule assignment",
			slog.String("error", err.Error()),
			slog.String("case_id", id.String()))
		return nil, MapError(err)
	}

	return c, nil
}

// ListByJudgeBetween implements store.CaseStore.ListByJudgeBetween
func (s *PostgresCaseStore) ListByJudgeBetween(ctx context.Context, judgeID uuid.UUID, start, end time.Time) ([]*domain.Case, error) {
	query := `SELECT ` + caseColumns + `
		FROM cases c
		WHERE c.assigned_judge = $1
		  AND c.scheduled_date >= $2
		  AND c.scheduled_date <= $3
		ORDER BY c.scheduled_date, c.scheduled_time`

	return s.queryCases(ctx, query, judgeID, start, end)
}

// ListSimilarCandidates implements store.CaseStore.ListSimilarCandidates
// The jsonb ?| operator tests whether any of the reference case's tags
// or entities appears in the candidate's arrays.
func (s *PostgresCaseStore) ListSimilarCandidates(ctx context.Context, ref *domain.Case, limit int) ([]*domain.Case, error) {
	query := `SELECT ` + caseColumns + `
		FROM cases c
		WHERE c.id <> $1
		  AND (c.ipc_tags ?| $2 OR c.entities ?| $3)
		ORDER BY c.created_at DESC
		LIMIT $4`

	return s.queryCases(ctx, query, ref.ID, ref.IPCTags, ref.Entities, limit)
}

// queryCases runs a query using the shared case select list and scans
// all resulting rows.
func (s *PostgresCaseStore) queryCases(ctx context.Context, query string, args ...any) ([]*domain.Case, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cases []*domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cases, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanCase.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCase reads one case row in caseColumns order, decoding the JSONB
// tag, entity and hearing-history columns.
func scanCase(row rowScanner) (*domain.Case, error) {
	var (
		c             domain.Case
		description   sql.NullString
		summary       sql.NullString
		status        string
		tagsRaw       []byte
		entitiesRaw   []byte
		scheduledDate sql.NullTime
		scheduledTime sql.NullString
		courtRoom     sql.NullString
		priority      sql.NullString
		assignedJudge uuid.NullUUID
		hearingsRaw   []byte
	)

	err := row.Scan(
		&c.ID,
		&c.CaseNumber,
		&c.Title,
		&description,
		&summary,
		&status,
		&c.CreatedBy,
		&tagsRaw,
		&entitiesRaw,
		&scheduledDate,
		&scheduledTime,
		&courtRoom,
		&priority,
		&c.EstimatedDuration,
		&assignedJudge,
		&hearingsRaw,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DocumentCount,
	)
	if err != nil {
		return nil, err
	}

	c.Description = description.String
	c.Summary = summary.String
	c.Status = domain.CaseStatus(status)

	if err := json.Unmarshal(tagsRaw, &c.IPCTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ipc tags: %w", err)
	}
	if err := json.Unmarshal(entitiesRaw, &c.Entities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
	}
	if err := json.Unmarshal(hearingsRaw, &c.PreviousHearings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal previous hearings: %w", err)
	}

	if scheduledDate.Valid {
		t := scheduledDate.Time
		c.ScheduledDate = &t
	}
	c.ScheduledTime = scheduledTime.String
	c.CourtRoom = courtRoom.String
	c.Priority = domain.Priority(priority.String)
	if assignedJudge.Valid {
		id := assignedJudge.UUID
		c.AssignedJudge = &id
	}

	return &c, nil
}

// nullableString converts an empty string to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullableTime converts a nil time pointer to SQL NULL.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullableUUID converts a nil UUID pointer to SQL NULL.
func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
