package domain

// LinkResult aggregates the outcome of a bulk sub-issue link operation.
// Individual failures are surfaced as warnings, not retained here.
type LinkResult struct {
	Linked int
	Failed int
}
