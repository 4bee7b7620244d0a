package scheduling

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/casemadad/courtflow/internal/domain"
)

// ScheduleItem is one proposed case-to-slot pairing. It is transient:
// nothing is persisted until the schedule is applied.
type ScheduleItem struct {
	CaseID            uuid.UUID       `json:"case_id"`
	CaseNumber        string          `json:"case_number"`
	Title             string          `json:"title"`
	Date              time.Time       `json:"date"`
	Time              string          `json:"time"`
	CourtRoom         string          `json:"court_room"`
	Priority          domain.Priority `json:"priority"`
	EstimatedDuration int             `json:"estimated_duration"`
	PriorityScore     float64         `json:"priority_score"`
}

// BuildResult is a proposed schedule plus its coverage metadata. When
// the slot horizon is shorter than the backlog, UnscheduledCount
// reports how many eligible cases did not fit.
type BuildResult struct {
	TotalCases       int            `json:"total_cases"`
	ScheduledCases   int            `json:"scheduled_cases"`
	UnscheduledCount int            `json:"unscheduled_count"`
	Message          string         `json:"message,omitempty"`
	Schedule         []ScheduleItem `json:"schedule"`
}

// BuildSchedule ranks the given unscheduled cases by priority score
// and pairs them with hearing slots over numDays working days starting
// at start. Cases with equal scores keep their input order (stable
// sort). Exactly min(len(cases), slot count) items are produced.
//
// An empty backlog yields an empty schedule with an explanatory
// message, not an error.
func BuildSchedule(
	cases []*domain.Case,
	start time.Time,
	numDays int,
	now time.Time,
	policy PriorityPolicy,
) *BuildResult {
	if len(cases) == 0 {
		return &BuildResult{
			Message:  "No unscheduled cases found",
			Schedule: []ScheduleItem{},
		}
	}

	type scoredCase struct {
		c     *domain.Case
		score float64
	}

	scored := make([]scoredCase, len(cases))
	for i, c := range cases {
		scored[i] = scoredCase{c: c, score: Score(c, now, policy)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	slots := PlanSlots(start, numDays)

	n := len(scored)
	if len(slots) < n {
		n = len(slots)
	}

	schedule := make([]ScheduleItem, 0, n)
	for i := 0; i < n; i++ {
		sc := scored[i]
		slot := slots[i]
		schedule = append(schedule, ScheduleItem{
			CaseID:            sc.c.ID,
			CaseNumber:        sc.c.CaseNumber,
			Title:             sc.c.Title,
			Date:              slot.Date,
			Time:              slot.Time,
			CourtRoom:         fmt.Sprintf("Court %d", slot.RoomIndex+1),
			Priority:          BucketForScore(sc.score),
			EstimatedDuration: domain.DefaultHearingDuration,
			PriorityScore:     math.Round(sc.score*10) / 10,
		})
	}

	return &BuildResult{
		TotalCases:       len(cases),
		ScheduledCases:   len(schedule),
		UnscheduledCount: len(cases) - len(schedule),
		Schedule:         schedule,
	}
}
