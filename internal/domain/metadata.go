package domain

import (
	"regexp"
	"strconv"
)

// Sub-issue relationship tags embedded in issue bodies. Whitespace inside the
// comment delimiters is flexible; values must be strictly numeric or the tag
// does not match at all.
var (
	parentTagRegex  = regexp.MustCompile(`<!--\s*leonidas-parent:\s*#(\d+)\s*-->`)
	orderTagRegex   = regexp.MustCompile(`<!--\s*leonidas-order:\s*(\d+)/(\d+)\s*-->`)
	dependsTagRegex = regexp.MustCompile(`<!--\s*leonidas-depends:\s*#(\d+)\s*-->`)
)

// SubIssueMetadata describes how an issue relates to its parent plan issue.
type SubIssueMetadata struct {
	ParentIssueNumber int
	Order             int
	Total             int
	DependsOn         *int
}

// ParseSubIssueMetadata extracts sub-issue metadata from an issue body.
// The result is nil unless both the parent tag and the order tag are present;
// a depends tag without the other two carries no meaning. Tags may appear in
// any order anywhere in the body, and the first occurrence of each tag wins
// over later duplicates.
func ParseSubIssueMetadata(body string) *SubIssueMetadata {
	parent := parentTagRegex.FindStringSubmatch(body)
	order := orderTagRegex.FindStringSubmatch(body)
	if parent == nil || order == nil {
		return nil
	}
	parentNumber, err := strconv.Atoi(parent[1])
	if err != nil {
		return nil
	}
	orderValue, err := strconv.Atoi(order[1])
	if err != nil {
		return nil
	}
	totalValue, err := strconv.Atoi(order[2])
	if err != nil {
		return nil
	}
	metadata := &SubIssueMetadata{
		ParentIssueNumber: parentNumber,
		Order:             orderValue,
		Total:             totalValue,
	}
	if depends := dependsTagRegex.FindStringSubmatch(body); depends != nil {
		if number, err := strconv.Atoi(depends[1]); err == nil {
			metadata.DependsOn = &number
		}
	}
	return metadata
}
