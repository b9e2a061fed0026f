package repository

import (
	"context"

	"github.com/JeremyDev87/leonidas/internal/domain"
)

// IssueRepository defines the core issue-scoped GitHub API operations.

type IssueRepository interface {
	// ListIssueComments returns all comments of an issue in server order,
	// following pagination to the end.
	ListIssueComments(ctx context.Context, issueNumber int) ([]domain.Comment, error)
	// GetIssue performs a fresh read of an issue; state is never cached.
	GetIssue(ctx context.Context, issueNumber int) (*domain.Issue, error)
	// CreateComment posts a comment on an issue.
	CreateComment(ctx context.Context, issueNumber int, body string) error
	// AddLabels adds labels to an issue or pull request.
	AddLabels(ctx context.Context, issueNumber int, labels []string) error
	// AddAssignees adds assignees to an issue or pull request.
	AddAssignees(ctx context.Context, issueNumber int, assignees []string) error
}
