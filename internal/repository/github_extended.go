package repository

import "context"

// GithubExtendedRepository extends IssueRepository with the pull request,
// branch and workflow operations the orchestration workflow needs.
type GithubExtendedRepository interface {
	IssueRepository
	// GetPRForBranch resolves the pull request built from the given head
	// branch. Returns nil when no PR exists yet; multiple matches are not an
	// error, the earliest wins.
	GetPRForBranch(ctx context.Context, branch string) (*int, error)
	// CreateDraftPR opens a draft pull request and returns its URL. Returns
	// an empty URL when a PR for the head already exists.
	CreateDraftPR(ctx context.Context, head, base, title, body string) (string, error)
	// BranchExists checks whether a branch exists on the remote.
	BranchExists(ctx context.Context, branch string) (bool, error)
	// DispatchWorkflow triggers a workflow_dispatch run against a ref.
	DispatchWorkflow(ctx context.Context, workflowFile, ref string) error
	// LinkSubIssue links a sub-issue (by internal id) to a parent issue.
	LinkSubIssue(ctx context.Context, parentNumber int, subIssueID int64) error
}
