package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/casemadad/courtflow/internal/domain"
)

// newTestCase builds a case created ageDays before the fixed test clock.
func newTestCase(title string, ageDays float64, tags []string, docCount int) *domain.Case {
	now := testNow()
	return &domain.Case{
		ID:            uuid.New(),
		CaseNumber:    "CRM-TEST",
		Title:         title,
		Status:        domain.CaseStatusPending,
		CreatedBy:     uuid.New(),
		IPCTags:       tags,
		DocumentCount: docCount,
		CreatedAt:     now.Add(-time.Duration(ageDays * 24 * float64(time.Hour))),
	}
}

func testNow() time.Time {
	return time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
}

func TestScoreAgeTerm(t *testing.T) {
	t.Parallel()

	policy := DefaultPriorityPolicy()

	tests := []struct {
		name     string
		ageDays  float64
		expected float64
	}{
		{name: "new case scores zero", ageDays: 0, expected: 0},
		{name: "ten days doubles to twenty", ageDays: 10, expected: 20},
		{name: "twenty-five days hits the cap exactly", ageDays: 25, expected: 50},
		{name: "ancient case saturates at cap", ageDays: 1000, expected: 50},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestCase("Civil suit", tc.ageDays, nil, 0)
			assert.InDelta(t, tc.expected, Score(c, testNow(), policy), 0.001)
		})
	}
}

func TestScoreSeverityTerm(t *testing.T) {
	t.Parallel()

	policy := DefaultPriorityPolicy()

	tests := []struct {
		name     string
		title    string
		tags     []string
		expected float64
	}{
		{name: "tag match", title: "State v. Singh", tags: []string{"IPC 302"}, expected: 40},
		{name: "title match", title: "Murder trial, State v. Singh", expected: 40},
		{name: "case-insensitive tag match", tags: []string{"ipc 498a"}, title: "Civil suit", expected: 40},
		{name: "dowry keyword in tag", tags: []string{"dowry harassment"}, title: "Civil suit", expected: 40},
		{name: "fires once despite multiple matches", title: "Murder and rape trial", tags: []string{"IPC 302", "IPC 376"}, expected: 40},
		{name: "no match", title: "Contract dispute", tags: []string{"IPC 420"}, expected: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestCase(tc.title, 0, tc.tags, 0)
			assert.InDelta(t, tc.expected, Score(c, testNow(), policy), 0.001)
		})
	}
}

func TestScoreTitleOnlySeverity(t *testing.T) {
	t.Parallel()

	policy := DefaultPriorityPolicy()

	tests := []struct {
		name     string
		title    string
		tags     []string
		expected float64
	}{
		// 40 severity + 30 bail type boost.
		{name: "bail title is severe", title: "Bail application", expected: 70},
		// 40 severity + 25 custody type boost.
		{name: "custody title is severe", title: "Child custody petition", expected: 65},
		{name: "bail tag alone is not severe", title: "Misc petition", tags: []string{"bail"}, expected: 0},
		{name: "custody tag alone is not severe", title: "Misc petition", tags: []string{"custody"}, expected: 0},
		// Severity fires once even when offence and liberty terms
		// both appear: 40 + 30 bail boost, not 80 + 30.
		{name: "severity does not stack with offence terms", title: "Murder bail hearing", expected: 70},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestCase(tc.title, 0, tc.tags, 0)
			assert.InDelta(t, tc.expected, Score(c, testNow(), policy), 0.001)
		})
	}
}

func TestScoreComplexityTerm(t *testing.T) {
	t.Parallel()

	policy := DefaultPriorityPolicy()

	tests := []struct {
		name     string
		docCount int
		expected float64
	}{
		{name: "no documents", docCount: 0, expected: 0},
		{name: "two documents", docCount: 2, expected: 10},
		{name: "four documents hits cap", docCount: 4, expected: 20},
		{name: "many documents saturates", docCount: 50, expected: 20},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestCase("Civil suit", 0, nil, tc.docCount)
			assert.InDelta(t, tc.expected, Score(c, testNow(), policy), 0.001)
		})
	}
}

func TestScoreCaseTypeBoosts(t *testing.T) {
	t.Parallel()

	policy := DefaultPriorityPolicy()

	tests := []struct {
		name     string
		title    string
		expected float64
	}{
		// Bail and custody titles also carry the flat +40 severity bump.
		{name: "bail boost", title: "Bail application", expected: 70},
		{name: "custody boost", title: "Child custody petition", expected: 65},
		{name: "interim boost", title: "Interim relief plea", expected: 20},
		{name: "boosts stack", title: "Interim bail plea pending custody ruling", expected: 115},
		{name: "tags do not trigger type boosts", title: "Misc petition", expected: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// Case-type terms appearing only in tags must not score.
			c := newTestCase(tc.title, 0, []string{"bail", "custody"}, 0)
			assert.InDelta(t, tc.expected, Score(c, testNow(), policy), 0.001)
		})
	}
}

func TestScoreTermsAreAdditive(t *testing.T) {
	t.Parallel()

	policy := DefaultPriorityPolicy()

	// 10 days age (20) + severity (40) + 3 docs (15) + bail (30) = 105
	c := newTestCase("Bail plea in murder matter", 10, []string{"IPC 302"}, 3)
	assert.InDelta(t, 105, Score(c, testNow(), policy), 0.001)
}

func TestScoreIsDeterministic(t *testing.T) {
	t.Parallel()

	policy := DefaultPriorityPolicy()
	c := newTestCase("Bail plea in murder matter", 12.5, []string{"IPC 302"}, 2)

	first := Score(c, testNow(), policy)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(c, testNow(), policy))
	}
}

func TestBucketForScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score    float64
		expected domain.Priority
	}{
		{score: 100, expected: domain.PriorityUrgent},
		{score: 70.1, expected: domain.PriorityUrgent},
		{score: 70, expected: domain.PriorityHigh}, // boundary is exclusive
		{score: 50.1, expected: domain.PriorityHigh},
		{score: 50, expected: domain.PriorityMedium},
		{score: 30.1, expected: domain.PriorityMedium},
		{score: 30, expected: domain.PriorityLow},
		{score: 0, expected: domain.PriorityLow},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, BucketForScore(tc.score), "score %v", tc.score)
	}
}
