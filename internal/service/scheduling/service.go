// Package scheduling implements the case prioritization and
// auto-scheduling engine: scoring the backlog, planning hearing slots,
// pairing the two into a proposed calendar, committing a proposal, and
// moving individual hearings.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
)

// Service provides the scheduling operations exposed over the API.
//
// Concurrency note: none of these operations lock or verify slot
// occupancy against previously applied schedules. Two concurrent
// callers can both read the same backlog and apply overlapping slots;
// conflict detection is intentionally out of scope.
type Service interface {
	// AutoSchedule builds a proposed hearing calendar from the current
	// unscheduled backlog over numDays working days starting at start.
	// Nothing is persisted; the caller reviews the proposal and
	// applies it separately.
	AutoSchedule(ctx context.Context, start time.Time, numDays int) (*BuildResult, error)

	// ApplySchedule commits a proposed schedule, assigning each item's
	// slot to its case under the acting judge. Items whose case no
	// longer exists are skipped, not fatal; the report carries each
	// item's outcome. The batch is not transactional.
	ApplySchedule(ctx context.Context, items []ScheduleItem, actingJudgeID uuid.UUID) (*ApplyReport, error)

	// JudgeCalendar returns the judge's scheduled cases within
	// [start, end] inclusive, grouped by calendar date.
	JudgeCalendar(ctx context.Context, judgeID uuid.UUID, start, end time.Time) (*CalendarView, error)

	// Reschedule moves a single case to a new hearing slot, archiving
	// the old slot into the case's hearing history. It does not
	// re-score the case or change its status.
	Reschedule(ctx context.Context, caseID uuid.UUID, newDate time.Time, newTime, courtRoom, reason string) (*domain.Case, error)
}

// ApplyOutcome records what happened to one schedule item during
// apply: either it was written, or it was skipped with a reason.
type ApplyOutcome struct {
	CaseID  uuid.UUID `json:"case_id"`
	Applied bool      `json:"applied"`
	Reason  string    `json:"reason,omitempty"`
}

// ApplyReport summarizes a (possibly partial) apply: how many items
// were written, the per-item outcomes, and the updated case records.
type ApplyReport struct {
	AppliedCount int            `json:"applied_count"`
	Outcomes     []ApplyOutcome `json:"outcomes"`
	UpdatedCases []*domain.Case `json:"updated_cases"`
}

// CalendarView is a judge's schedule grouped by ISO calendar date.
type CalendarView struct {
	Schedule       map[string][]*domain.Case `json:"schedule"`
	TotalScheduled int                       `json:"total_scheduled"`
}

// Common error types for the scheduling service
var (
	// ErrCaseNotFound indicates that the referenced case does not exist.
	ErrCaseNotFound = errors.New("case not found")

	// ErrEmptySchedule indicates an apply request carried no items.
	ErrEmptySchedule = errors.New("no schedule provided")
)

// ServiceError wraps errors from the scheduling service with
// additional context, so consumers can differentiate failure sites
// with errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "auto_schedule")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
