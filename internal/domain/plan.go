package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Plan marker literals. PlanMarker is the language-neutral structural marker
// current bot versions embed in plan comments; LegacyPlanHeader is the
// human-readable header older versions posted instead.
const (
	PlanMarker          = "<!-- leonidas:plan -->"
	LegacyPlanHeader    = "## Implementation Plan"
	DecompositionMarker = "<!-- leonidas:decomposed -->"
)

// ContainsPlanMarker reports whether a comment body carries the structural
// plan marker.
func ContainsPlanMarker(body string) bool {
	return strings.Contains(body, PlanMarker)
}

// ContainsLegacyPlanHeader reports whether a comment body carries the legacy
// plan header.
func ContainsLegacyPlanHeader(body string) bool {
	return strings.Contains(body, LegacyPlanHeader)
}

// IsDecomposedPlan reports whether a plan body represents a plan that was
// decomposed into sub-issues. The check is an exact substring match against
// DecompositionMarker; textually similar but non-identical strings never
// match.
func IsDecomposedPlan(planBody string) bool {
	return strings.Contains(planBody, DecompositionMarker)
}

// subIssueRefPatterns matches issue references in decomposed plan bodies:
// tasklist items ("- [ ] #123"), plain list items ("- #123") and table cells
// ("| #123 |").
var subIssueRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[-*]\s+\[[ xX]\]\s+#(\d+)`),
	regexp.MustCompile(`(?m)^[-*]\s+#(\d+)`),
	regexp.MustCompile(`\|\s*#(\d+)\s*\|`),
}

// ExtractSubIssueRefs returns the issue numbers a decomposed plan body refers
// to, deduplicated in order of first appearance.
func ExtractSubIssueRefs(body string) []int {
	seen := make(map[int]bool)
	var numbers []int
	for _, pattern := range subIssueRefPatterns {
		for _, match := range pattern.FindAllStringSubmatch(body, -1) {
			number, err := strconv.Atoi(match[1])
			if err != nil || seen[number] {
				continue
			}
			seen[number] = true
			numbers = append(numbers, number)
		}
	}
	return numbers
}
