package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CaseStatus represents the processing state of a case.
type CaseStatus string

// Possible case status values
const (
	CaseStatusPending    CaseStatus = "pending"
	CaseStatusProcessing CaseStatus = "processing"
	CaseStatusCompleted  CaseStatus = "completed"
	CaseStatusClosed     CaseStatus = "closed"
	CaseStatusScheduled  CaseStatus = "scheduled"
)

// Priority is the discretized urgency bucket shown to users. It is
// derived from a continuous priority score and is never an
// authoritative input to scoring.
type Priority string

// Possible priority levels
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DefaultHearingDuration is the assumed hearing length in minutes when
// a case has no explicit estimate.
const DefaultHearingDuration = 30

// Common validation errors for Case
var (
	ErrEmptyCaseID      = errors.New("case ID cannot be empty")
	ErrEmptyCaseNumber  = errors.New("case number cannot be empty")
	ErrEmptyCaseTitle   = errors.New("case title cannot be empty")
	ErrEmptyCaseCreator = errors.New("case creator ID cannot be empty")
	ErrNegativeDuration = errors.New("estimated duration cannot be negative")
)

// Hearing is one entry in a case's hearing history. Entries are
// appended when a scheduled case is moved to a new slot; the log never
// shrinks.
type Hearing struct {
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes"`
	Duration int       `json:"duration"`
}

// Case represents a court case. Scheduling fields (ScheduledDate,
// ScheduledTime, CourtRoom) are nil/empty until the scheduling engine
// assigns a hearing slot; a case counts as unscheduled while
// ScheduledDate is nil.
type Case struct {
	ID          uuid.UUID  `json:"id"`
	CaseNumber  string     `json:"case_number"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Status      CaseStatus `json:"status"`
	CreatedBy   uuid.UUID  `json:"created_by"`

	// IPCTags and Entities are extracted by the (external) document
	// analysis pipeline and drive severity scoring and similarity.
	IPCTags  []string `json:"ipc_tags"`
	Entities []string `json:"entities"`

	// DocumentCount is derived from the related documents table; it is
	// read-only on the entity and feeds the complexity term of the
	// priority score.
	DocumentCount int `json:"document_count"`

	ScheduledDate     *time.Time `json:"scheduled_date,omitempty"`
	ScheduledTime     string     `json:"scheduled_time,omitempty"`
	CourtRoom         string     `json:"court_room,omitempty"`
	Priority          Priority   `json:"priority,omitempty"`
	EstimatedDuration int        `json:"estimated_duration"`
	AssignedJudge     *uuid.UUID `json:"assigned_judge,omitempty"`

	PreviousHearings []Hearing `json:"previous_hearings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCase creates a new Case with the given case number, title and
// creator. The case starts in pending status with no hearing slot.
// Returns an error if validation fails.
func NewCase(caseNumber, title, description string, createdBy uuid.UUID) (*Case, error) {
	now := time.Now().UTC()
	c := &Case{
		ID:                uuid.New(),
		CaseNumber:        caseNumber,
		Title:             title,
		Description:       description,
		Status:            CaseStatusPending,
		CreatedBy:         createdBy,
		IPCTags:           []string{},
		Entities:          []string{},
		EstimatedDuration: DefaultHearingDuration,
		PreviousHearings:  []Hearing{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Case has valid data.
// Returns an error if any field fails validation.
func (c *Case) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCaseID
	}

	if c.CaseNumber == "" {
		return ErrEmptyCaseNumber
	}

	if c.Title == "" {
		return ErrEmptyCaseTitle
	}

	if c.CreatedBy == uuid.Nil {
		return ErrEmptyCaseCreator
	}

	if !isValidCaseStatus(c.Status) {
		return ErrInvalidCaseStatus
	}

	if c.Priority != "" && !isValidPriority(c.Priority) {
		return ErrInvalidPriority
	}

	if c.EstimatedDuration < 0 {
		return ErrNegativeDuration
	}

	return nil
}

// IsScheduled reports whether the case currently holds a hearing slot.
func (c *Case) IsScheduled() bool {
	return c.ScheduledDate != nil
}

// Reschedule moves the case to a new hearing slot. If the case already
// holds a slot, the old slot is archived into PreviousHearings first:
// exactly one entry per call, carrying the old date, the supplied
// reason (or "Rescheduled") and the old duration estimate. Priority
// and status are left untouched.
func (c *Case) Reschedule(newDate time.Time, newTime, newRoom, reason string, now time.Time) {
	if c.ScheduledDate != nil {
		notes := reason
		if notes == "" {
			notes = "Rescheduled"
		}
		duration := c.EstimatedDuration
		if duration == 0 {
			duration = DefaultHearingDuration
		}
		c.PreviousHearings = append(c.PreviousHearings, Hearing{
			Date:     *c.ScheduledDate,
			Notes:    notes,
			Duration: duration,
		})
	}

	c.ScheduledDate = &newDate
	c.ScheduledTime = newTime
	c.CourtRoom = newRoom
	c.UpdatedAt = now
}

// UpdateStatus updates the case's status and the UpdatedAt timestamp.
// Returns an error if the new status is invalid.
func (c *Case) UpdateStatus(status CaseStatus) error {
	if !isValidCaseStatus(status) {
		return ErrInvalidCaseStatus
	}

	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// isValidCaseStatus checks if the given status is a valid CaseStatus.
func isValidCaseStatus(status CaseStatus) bool {
	switch status {
	case CaseStatusPending, CaseStatusProcessing, CaseStatusCompleted,
		CaseStatusClosed, CaseStatusScheduled:
		return true
	default:
		return false
	}
}

// isValidPriority checks if the given priority is a valid Priority.
func isValidPriority(p Priority) bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}
