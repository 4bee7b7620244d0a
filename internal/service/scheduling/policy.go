package scheduling

import "github.com/casemadad/courtflow/internal/domain"

// KeywordRule is one entry of the declarative prioritization policy: a
// named category, the case-insensitive substrings that trigger it, and
// the points it contributes. A TitleOnly rule ignores IPC tags and
// matches against the case title alone.
type KeywordRule struct {
	Category   string   `json:"category"`
	MatchTerms []string `json:"match_terms"`
	ScoreDelta float64  `json:"score_delta"`
	TitleOnly  bool     `json:"title_only,omitempty"`
}

// PriorityPolicy is the full declarative policy the priority scorer
// evaluates. Keeping it as data rather than inline string checks means
// the lexicons can be tested and extended independently of the scoring
// function.
type PriorityPolicy struct {
	// AgePointsPerDay scales case age into urgency; AgeCap saturates
	// the term so ancient cases don't dominate indefinitely.
	AgePointsPerDay float64
	AgeCap          float64

	// SeverityRules match against both IPC tags and the title unless
	// marked TitleOnly. The severity term is flat: the first matching
	// rule contributes its delta and the remaining rules are skipped,
	// regardless of how many terms match.
	SeverityRules []KeywordRule

	// ComplexityPointsPerDocument scales the document count;
	// ComplexityCap saturates the term.
	ComplexityPointsPerDocument float64
	ComplexityCap               float64

	// CaseTypeRules match against the title only. Each rule
	// contributes its delta at most once; multiple rules stack.
	CaseTypeRules []KeywordRule
}

// Priority bucket thresholds. These are wire-compatible constants:
// clients bucket displayed urgency on the same boundaries.
const (
	urgentThreshold = 70
	highThreshold   = 50
	mediumThreshold = 30
)

// DefaultPriorityPolicy returns the standing court prioritization
// policy: age pressure capped at 50, a flat severity bump for violent
// and dowry-related offence markers and for liberty matters named in
// the title, document-count complexity capped at 20, and title-based
// boosts for bail, custody and interim matters.
func DefaultPriorityPolicy() PriorityPolicy {
	return PriorityPolicy{
		AgePointsPerDay: 2,
		AgeCap:          50,
		SeverityRules: []KeywordRule{
			{
				Category:   "severe-offence",
				MatchTerms: []string{"IPC 302", "IPC 376", "IPC 498A", "murder", "rape", "dowry"},
				ScoreDelta: 40,
			},
			{
				// Liberty matters are severe only when the title says
				// so; a bail tag on an unrelated case does not qualify.
				Category:   "liberty-matter",
				MatchTerms: []string{"bail", "custody"},
				ScoreDelta: 40,
				TitleOnly:  true,
			},
		},
		ComplexityPointsPerDocument: 5,
		ComplexityCap:               20,
		CaseTypeRules: []KeywordRule{
			{Category: "bail", MatchTerms: []string{"bail"}, ScoreDelta: 30},
			{Category: "custody", MatchTerms: []string{"custody"}, ScoreDelta: 25},
			{Category: "interim", MatchTerms: []string{"interim"}, ScoreDelta: 20},
		},
	}
}

// BucketForScore maps a continuous priority score to its display
// bucket.
func BucketForScore(score float64) domain.Priority {
	switch {
	case score > urgentThreshold:
		return domain.PriorityUrgent
	case score > highThreshold:
		return domain.PriorityHigh
	case score > mediumThreshold:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
