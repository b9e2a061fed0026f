package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/JeremyDev87/leonidas/internal/domain"
)

var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct {
	owner string
	repo  string
}

// NewGithubNoopRepository returns a repository that rejects every operation
// with ErrGithubTokenRequired. Used when no token is configured so command
// wiring stays uniform.
func NewGithubNoopRepository(owner, repo string) GithubExtendedRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) ListIssueComments(_ context.Context, _ int) ([]domain.Comment, error) {
	return nil, r.operationError("list issue comments")
}

func (r *githubNoopRepository) GetIssue(_ context.Context, _ int) (*domain.Issue, error) {
	return nil, r.operationError("get issue")
}

func (r *githubNoopRepository) CreateComment(_ context.Context, _ int, _ string) error {
	return r.operationError("create comment")
}

func (r *githubNoopRepository) AddLabels(_ context.Context, _ int, _ []string) error {
	return r.operationError("add labels")
}

func (r *githubNoopRepository) AddAssignees(_ context.Context, _ int, _ []string) error {
	return r.operationError("add assignees")
}

func (r *githubNoopRepository) GetPRForBranch(_ context.Context, _ string) (*int, error) {
	return nil, r.operationError("resolve pull request for branch")
}

func (r *githubNoopRepository) CreateDraftPR(_ context.Context, _, _, _, _ string) (string, error) {
	return "", r.operationError("create draft pull request")
}

func (r *githubNoopRepository) BranchExists(_ context.Context, _ string) (bool, error) {
	return false, r.operationError("check branch existence")
}

func (r *githubNoopRepository) DispatchWorkflow(_ context.Context, _, _ string) error {
	return r.operationError("dispatch workflow")
}

func (r *githubNoopRepository) LinkSubIssue(_ context.Context, _ int, _ int64) error {
	return r.operationError("link sub-issue")
}

func (r *githubNoopRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s for %s/%s", ErrGithubTokenRequired, action, r.owner, r.repo)
}
