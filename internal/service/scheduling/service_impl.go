package scheduling

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
	"github.com/casemadad/courtflow/internal/platform/logger"
	"github.com/casemadad/courtflow/internal/store"
)

// service is the production implementation of Service backed by the
// case store.
type service struct {
	caseStore store.CaseStore
	policy    PriorityPolicy
	timeFunc  func() time.Time // Injectable for testing
	logger    *slog.Logger
}

// Ensure service implements Service interface
var _ Service = (*service)(nil)

// Option customizes the scheduling service.
type Option func(*service)

// WithTimeFunc overrides the service's clock. Used by tests to make
// age-based scoring deterministic.
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *service) {
		s.timeFunc = fn
	}
}

// WithPolicy replaces the default prioritization policy.
func WithPolicy(policy PriorityPolicy) Option {
	return func(s *service) {
		s.policy = policy
	}
}

// NewService creates a scheduling service using the given case store.
// If log is nil, the default logger is used.
func NewService(caseStore store.CaseStore, log *slog.Logger, opts ...Option) Service {
	if caseStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("caseStore cannot be nil for scheduling service")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &service{
		caseStore: caseStore,
		policy:    DefaultPriorityPolicy(),
		timeFunc:  time.Now,
		logger:    log.With(slog.String("component", "scheduling_service")),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AutoSchedule implements Service.AutoSchedule.
func (s *service) AutoSchedule(ctx context.Context, start time.Time, numDays int) (*BuildResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	backlog, err := s.caseStore.ListUnscheduled(ctx)
	if err != nil {
		log.Error("failed to load unscheduled backlog",
			slog.String("error", err.Error()))
		return nil, &ServiceError{
			Operation: "auto_schedule",
			Message:   "failed to load unscheduled cases",
			Err:       err,
		}
	}

	result := BuildSchedule(backlog, start, numDays, s.timeFunc(), s.policy)

	log.Debug("built proposed schedule",
		slog.Int("total_cases", result.TotalCases),
		slog.Int("scheduled_cases", result.ScheduledCases),
		slog.Int("unscheduled_count", result.UnscheduledCount))
	return result, nil
}

// ApplySchedule implements Service.ApplySchedule.
func (s *service) ApplySchedule(ctx context.Context, items []ScheduleItem, actingJudgeID uuid.UUID) (*ApplyReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(items) == 0 {
		return nil, ErrEmptySchedule
	}

	report := &ApplyReport{
		Outcomes:     make([]ApplyOutcome, 0, len(items)),
		UpdatedCases: make([]*domain.Case, 0, len(items)),
	}

	for _, item := range items {
		updated, err := s.caseStore.ApplyAssignment(ctx, item.CaseID, store.ScheduleAssignment{
			ScheduledDate:     item.Date,
			ScheduledTime:     item.Time,
			CourtRoom:         item.CourtRoom,
			Priority:          item.Priority,
			EstimatedDuration: item.EstimatedDuration,
			AssignedJudge:     actingJudgeID,
		})
		if err != nil {
			// Per-item failures are skipped, never fatal to the batch.
			log.Warn("skipping schedule item",
				slog.String("case_id", item.CaseID.String()),
				slog.String("error", err.Error()))
			report.Outcomes = append(report.Outcomes, ApplyOutcome{
				CaseID: item.CaseID,
				Reason: skipReason(err),
			})
			continue
		}

		report.AppliedCount++
		report.Outcomes = append(report.Outcomes, ApplyOutcome{
			CaseID:  item.CaseID,
			Applied: true,
		})
		report.UpdatedCases = append(report.UpdatedCases, updated)
	}

	log.Info("applied schedule",
		slog.Int("requested", len(items)),
		slog.Int("applied", report.AppliedCount))
	return report, nil
}

// JudgeCalendar implements Service.JudgeCalendar.
func (s *service) JudgeCalendar(ctx context.Context, judgeID uuid.UUID, start, end time.Time) (*CalendarView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cases, err := s.caseStore.ListByJudgeBetween(ctx, judgeID, start, end)
	if err != nil {
		log.Error("failed to load judge schedule",
			slog.String("judge_id", judgeID.String()),
			slog.String("error", err.Error()))
		return nil, &ServiceError{
			Operation: "judge_calendar",
			Message:   "failed to load scheduled cases",
			Err:       err,
		}
	}

	view := &CalendarView{
		Schedule:       make(map[string][]*domain.Case),
		TotalScheduled: len(cases),
	}
	for _, c := range cases {
		if c.ScheduledDate == nil {
			continue
		}
		dateKey := c.ScheduledDate.Format("2006-01-02")
		view.Schedule[dateKey] = append(view.Schedule[dateKey], c)
	}

	return view, nil
}

// Reschedule implements Service.Reschedule.
func (s *service) Reschedule(ctx context.Context, caseID uuid.UUID, newDate time.Time, newTime, courtRoom, reason string) (*domain.Case, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := s.caseStore.GetByID(ctx, caseID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCaseNotFound
		}
		log.Error("failed to load case for reschedule",
			slog.String("case_id", caseID.String()),
			slog.String("error", err.Error()))
		return nil, &ServiceError{
			Operation: "reschedule",
			Message:   "failed to load case",
			Err:       err,
		}
	}

	c.Reschedule(newDate, newTime, courtRoom, reason, s.timeFunc().UTC())

	if err := s.caseStore.Save(ctx, c); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCaseNotFound
		}
		log.Error("failed to save rescheduled case",
			slog.String("case_id", caseID.String()),
			slog.String("error", err.Error()))
		return nil, &ServiceError{
			Operation: "reschedule",
			Message:   "failed to save case",
			Err:       err,
		}
	}

	log.Info("case rescheduled",
		slog.String("case_id", caseID.String()),
		slog.String("new_date", newDate.Format("2006-01-02")),
		slog.String("new_time", newTime),
		slog.Int("previous_hearings", len(c.PreviousHearings)))
	return c, nil
}

// skipReason renders a per-item skip reason for the apply report.
func skipReason(err error) string {
	if errors.Is(err, store.ErrNotFound) {
		return "case not found"
	}
	return "update failed"
}
