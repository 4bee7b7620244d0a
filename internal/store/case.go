package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
)

// ScheduleAssignment carries the scheduling fields written to a case
// when a proposed schedule is applied. All fields are written
// together; the case's status moves to scheduled in the same update.
type ScheduleAssignment struct {
	ScheduledDate     time.Time
	ScheduledTime     string
	CourtRoom         string
	Priority          domain.Priority
	EstimatedDuration int
	AssignedJudge     uuid.UUID
}

// CaseStore defines the interface for case data persistence.
type CaseStore interface {
	// Create saves a new case to the store.
	// Returns ErrCaseNumberExists if the case number is already taken.
	Create(ctx context.Context, c *domain.Case) error

	// GetByID retrieves a case by its unique ID, including its derived
	// document count. Returns ErrCaseNotFound if the case does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)

	// List retrieves a page of cases ordered by creation time
	// descending, along with the total case count.
	List(ctx context.Context, offset, limit int) ([]*domain.Case, int, error)

	// Save persists the mutable fields of an existing case (title,
	// description, summary, status, tags, entities, scheduling fields
	// and hearing history). Returns ErrCaseNotFound if the case does
	// not exist.
	Save(ctx context.Context, c *domain.Case) error

	// Delete removes a case from the store by its ID. Associated
	// document records are removed by the database's cascade rule.
	// Returns ErrCaseNotFound if the case does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListUnscheduled retrieves the scheduling backlog: cases with no
	// scheduled date whose status is pending or processing, ordered by
	// creation time descending. Document counts are populated.
	ListUnscheduled(ctx context.Context) ([]*domain.Case, error)

	// ApplyAssignment writes a hearing slot assignment to a single
	// case and flips its status to scheduled. The update is
	// independent of any other case; callers applying a batch must
	// treat a per-case ErrCaseNotFound as skippable.
	// Returns the updated case.
	ApplyAssignment(ctx context.Context, id uuid.UUID, a ScheduleAssignment) (*domain.Case, error)

	// ListByJudgeBetween retrieves the cases assigned to the given
	// judge with a scheduled date within [start, end] inclusive,
	// ordered by scheduled date then scheduled time.
	ListByJudgeBetween(ctx context.Context, judgeID uuid.UUID, start, end time.Time) ([]*domain.Case, error)

	// ListSimilarCandidates retrieves up to limit cases, other than
	// the reference case itself, sharing at least one IPC tag or at
	// least one entity with it. The limit applies before any scoring,
	// so callers only see the first matches in the store's default
	// order (creation time descending).
	ListSimilarCandidates(ctx context.Context, ref *domain.Case, limit int) ([]*domain.Case, error)
}
