package scheduling

import (
	"strings"
	"time"

	"github.com/casemadad/courtflow/internal/domain"
)

// Score computes the priority score for a single case at the given
// instant. It is pure and deterministic: the same case attributes and
// the same now always produce the same score. Ties between equal
// scores are broken by input order (the schedule builder sorts with a
// stable sort).
func Score(c *domain.Case, now time.Time, policy PriorityPolicy) float64 {
	var score float64

	// Age pressure, saturating at the cap.
	daysSinceCreated := now.Sub(c.CreatedAt).Hours() / 24
	score += min(daysSinceCreated*policy.AgePointsPerDay, policy.AgeCap)

	// Severity is a flat bump: the first rule whose terms appear in a
	// tag or in the title (title only, for TitleOnly rules) fires, and
	// the remaining rules are skipped.
	title := strings.ToLower(c.Title)
	for _, rule := range policy.SeverityRules {
		if ruleMatchesCase(rule, title, c.IPCTags) {
			score += rule.ScoreDelta
			break
		}
	}

	// Complexity from attached documents, saturating at the cap.
	score += min(float64(c.DocumentCount)*policy.ComplexityPointsPerDocument, policy.ComplexityCap)

	// Case-type boosts match the title only and stack across rules.
	for _, rule := range policy.CaseTypeRules {
		if anyTermIn(rule.MatchTerms, title) {
			score += rule.ScoreDelta
		}
	}

	return score
}

// ruleMatchesCase reports whether any of the rule's terms appears,
// case-insensitively, in the lowercased title or, for rules that are
// not TitleOnly, in any IPC tag.
func ruleMatchesCase(rule KeywordRule, lowerTitle string, tags []string) bool {
	if anyTermIn(rule.MatchTerms, lowerTitle) {
		return true
	}
	if rule.TitleOnly {
		return false
	}
	for _, tag := range tags {
		if anyTermIn(rule.MatchTerms, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}

// anyTermIn reports whether any term is a substring of the lowercased
// haystack.
func anyTermIn(terms []string, lowerHaystack string) bool {
	for _, term := range terms {
		if strings.Contains(lowerHaystack, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
