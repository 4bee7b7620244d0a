package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
	"github.com/casemadad/courtflow/internal/service/scheduling"
)

// RegisterRequest represents the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Role     string `json:"role" validate:"required,oneof=judge clerk admin"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest represents the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents the payload for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse represents the response for successful authentication.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
}

// CreateCaseRequest represents the payload for creating a case.
type CreateCaseRequest struct {
	CaseNumber  string   `json:"case_number" validate:"required,min=1,max=100"`
	Title       string   `json:"title" validate:"required,min=1,max=500"`
	Description string   `json:"description" validate:"max=10000"`
	IPCTags     []string `json:"ipc_tags" validate:"omitempty,dive,min=1"`
	Entities    []string `json:"entities" validate:"omitempty,dive,min=1"`
}

// UpdateCaseRequest represents the payload for updating a case. All fields
// are optional; only the fields present in the request are applied.
type UpdateCaseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string  `json:"description" validate:"omitempty,max=10000"`
	Summary     *string  `json:"summary" validate:"omitempty,max=10000"`
	Status      *string  `json:"status" validate:"omitempty,oneof=pending processing completed closed scheduled"`
	IPCTags     []string `json:"ipc_tags" validate:"omitempty,dive,min=1"`
	Entities    []string `json:"entities" validate:"omitempty,dive,min=1"`
}

// CaseListResponse represents a paginated list of cases.
type CaseListResponse struct {
	Cases  []*domain.Case `json:"cases"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// AutoScheduleRequest represents the payload for generating a schedule
// proposal for the unscheduled backlog.
type AutoScheduleRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Days      int    `json:"days" validate:"omitempty,min=1,max=90"`
}

// ApplyScheduleRequest represents the payload for persisting a previously
// generated schedule proposal.
type ApplyScheduleRequest struct {
	Schedule []scheduling.ScheduleItem `json:"schedule" validate:"required"`
}

// RescheduleRequest represents the payload for moving a scheduled hearing.
type RescheduleRequest struct {
	ScheduledDate string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime string `json:"scheduled_time" validate:"required"`
	CourtRoom     string `json:"court_room" validate:"required"`
	Reason        string `json:"reason" validate:"omitempty,max=1000"`
}

// CalendarResponse represents a judge's hearing calendar grouped by day.
type CalendarResponse struct {
	Schedule       map[string][]*domain.Case `json:"schedule"`
	TotalScheduled int                       `json:"total_scheduled"`
	StartDate      string                    `json:"start_date"`
	EndDate        string                    `json:"end_date"`
}

// DocumentResponse represents document metadata returned to clients.
type DocumentResponse struct {
	ID           uuid.UUID `json:"id"`
	CaseID       uuid.UUID `json:"case_id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Status       string    `json:"status"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
