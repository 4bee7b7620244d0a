package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/casemadad/courtflow/internal/api/shared"
	"github.com/casemadad/courtflow/internal/config"
	"github.com/casemadad/courtflow/internal/platform/logger"
	"github.com/casemadad/courtflow/internal/service/scheduling"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// ScheduleHandler handles the scheduling endpoints: generating a
// schedule proposal, applying it, viewing a judge's calendar and moving
// individual hearings.
type ScheduleHandler struct {
	schedulingService scheduling.Service
	cfg               config.SchedulingConfig
	timeFunc          func() time.Time
	logger            *slog.Logger
}

// NewScheduleHandler creates a new ScheduleHandler with the given dependencies.
func NewScheduleHandler(
	schedulingService scheduling.Service,
	cfg config.SchedulingConfig,
	log *slog.Logger,
) *ScheduleHandler {
	if schedulingService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("schedulingService cannot be nil")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil")
	}

	return &ScheduleHandler{
		schedulingService: schedulingService,
		cfg:               cfg,
		timeFunc:          time.Now,
		logger:            log.With(slog.String("component", "schedule_handler")),
	}
}

// AutoSchedule handles GET /api/scheduling/auto-schedule. It builds a
// schedule proposal for the unscheduled backlog without persisting
// anything.
func (h *ScheduleHandler) AutoSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	start := h.timeFunc().UTC()
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid startDate, expected YYYY-MM-DD")
			return
		}
		start = parsed
	}

	days := h.cfg.DefaultHorizonDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid days, expected a positive integer")
			return
		}
		days = parsed
	}

	result, err := h.schedulingService.AutoSchedule(ctx, start, days)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate schedule", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ApplySchedule handles POST /api/scheduling/apply-schedule. It
// persists a previously generated proposal, assigning the hearings to
// the authenticated judge.
func (h *ScheduleHandler) ApplySchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	judgeID, err := getUserIDFromContext(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ApplyScheduleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	report, err := h.schedulingService.ApplySchedule(ctx, req.Schedule, judgeID)
	if err != nil {
		if errors.Is(err, scheduling.ErrEmptySchedule) {
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to apply schedule", err)
		return
	}

	log.Info("schedule applied",
		slog.String("judge_id", judgeID.String()),
		slog.Int("applied_count", report.AppliedCount),
		slog.Int("total_items", len(report.Outcomes)))

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// MySchedule handles GET /api/scheduling/my-schedule. It returns the
// authenticated judge's hearings grouped by day.
func (h *ScheduleHandler) MySchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	judgeID, err := getUserIDFromContext(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	start := h.timeFunc().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid startDate, expected YYYY-MM-DD")
			return
		}
		start = parsed
	}

	end := start.AddDate(0, 0, h.cfg.CalendarWindowDays)
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"Invalid endDate, expected YYYY-MM-DD")
			return
		}
		end = parsed
	}
	if end.Before(start) {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"endDate must not be before startDate")
		return
	}

	view, err := h.schedulingService.JudgeCalendar(ctx, judgeID, start, end)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load calendar", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CalendarResponse{
		Schedule:       view.Schedule,
		TotalScheduled: view.TotalScheduled,
		StartDate:      start.Format(dateLayout),
		EndDate:        end.Format(dateLayout),
	})
}

// Reschedule handles PUT /api/scheduling/reschedule/{caseID}.
func (h *ScheduleHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	caseID, err := getPathUUID(r, "caseID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid case ID")
		return
	}

	var req RescheduleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	newDate, err := time.Parse(dateLayout, req.ScheduledDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid scheduled_date, expected YYYY-MM-DD")
		return
	}

	updated, err := h.schedulingService.Reschedule(
		ctx, caseID, newDate, req.ScheduledTime, req.CourtRoom, req.Reason)
	if err != nil {
		if errors.Is(err, scheduling.ErrCaseNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to reschedule case", err)
		return
	}

	log.Info("case rescheduled",
		slog.String("case_id", caseID.String()),
		slog.String("scheduled_date", req.ScheduledDate),
		slog.String("scheduled_time", req.ScheduledTime))

	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}
