package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/JeremyDev87/leonidas/internal/config"
	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the GithubExtendedRepository
// interface. One instance owns one authenticated API session scoped to a
// single (token, owner, repo) triple for its whole lifetime.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new IssueRepository with validation.
func NewGithubRepository(token, owner, repo string) (IssueRepository, error) {
	return newGithubRepository(token, owner, repo)
}

// NewGithubExtendedRepository creates a new GithubExtendedRepository with validation.
func NewGithubExtendedRepository(token, owner, repo string) (GithubExtendedRepository, error) {
	return newGithubRepository(token, owner, repo)
}

func newGithubRepository(token, owner, repo string) (*githubRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubRepository{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// ListIssueComments fetches every comment page of an issue, preserving server
// order across pages.
func (r *githubRepository) ListIssueComments(ctx context.Context, issueNumber int) ([]domain.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []domain.Comment
	for {
		comments, resp, err := r.client.Issues.ListComments(ctx, r.owner, r.repo, issueNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments for issue #%d: %w", issueNumber, err)
		}
		for _, comment := range comments {
			all = append(all, domain.Comment{
				ID:     comment.GetID(),
				Author: comment.GetUser().GetLogin(),
				Body:   comment.GetBody(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// GetIssue reads an issue. A remote 404 is classified as a NotFoundError so
// callers can distinguish a missing issue from transient failures.
func (r *githubRepository) GetIssue(ctx context.Context, issueNumber int) (*domain.Issue, error) {
	issue, resp, err := r.client.Issues.Get(ctx, r.owner, r.repo, issueNumber)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, &NotFoundError{
				Resource: "issue",
				Name:     fmt.Sprintf("#%d", issueNumber),
				Owner:    r.owner,
				Repo:     r.repo,
			}
		}
		return nil, fmt.Errorf("failed to get issue #%d: %w", issueNumber, err)
	}
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	return &domain.Issue{
		Number: issue.GetNumber(),
		ID:     issue.GetID(),
		State:  issue.GetState(),
		Author: issue.GetUser().GetLogin(),
		Body:   issue.GetBody(),
		Labels: labels,
	}, nil
}

// CreateComment posts a comment on an issue.
func (r *githubRepository) CreateComment(ctx context.Context, issueNumber int, body string) error {
	comment := &github.IssueComment{
		Body: github.Ptr(body),
	}
	_, _, err := r.client.Issues.CreateComment(ctx, r.owner, r.repo, issueNumber, comment)
	if err != nil {
		return fmt.Errorf("failed to add comment to issue #%d: %w", issueNumber, err)
	}
	return nil
}

// AddLabels adds labels to an issue or pull request.
func (r *githubRepository) AddLabels(ctx context.Context, issueNumber int, labels []string) error {
	_, _, err := r.client.Issues.AddLabelsToIssue(ctx, r.owner, r.repo, issueNumber, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels to #%d: %w", issueNumber, err)
	}
	return nil
}

// AddAssignees adds assignees to an issue or pull request.
func (r *githubRepository) AddAssignees(ctx context.Context, issueNumber int, assignees []string) error {
	_, _, err := r.client.Issues.AddAssignees(ctx, r.owner, r.repo, issueNumber, assignees)
	if err != nil {
		return fmt.Errorf("failed to add assignees to #%d: %w", issueNumber, err)
	}
	return nil
}

// GetPRForBranch resolves the pull request whose head is the given branch.
// The query spans all PR states and is scoped to the owning account; when
// several match, the first in listing order wins.
func (r *githubRepository) GetPRForBranch(ctx context.Context, branch string) (*int, error) {
	prs, _, err := r.client.PullRequests.List(ctx, r.owner, r.repo, &github.PullRequestListOptions{
		Head:        fmt.Sprintf("%s:%s", r.owner, branch),
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests for branch %s: %w", branch, err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	number := prs[0].GetNumber()
	return &number, nil
}

// CreateDraftPR opens a draft pull request. A 422 from the remote means a PR
// for the head already exists and resolves to an empty URL, not an error.
func (r *githubRepository) CreateDraftPR(ctx context.Context, head, base, title, body string) (string, error) {
	pr, resp, err := r.client.PullRequests.Create(ctx, r.owner, r.repo, &github.NewPullRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
		Draft: github.Ptr(true),
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			return "", nil
		}
		return "", fmt.Errorf("failed to create draft pull request for %s: %w", head, err)
	}
	return pr.GetHTMLURL(), nil
}

// BranchExists checks whether a branch exists on the remote. A remote 404
// resolves to false without error.
func (r *githubRepository) BranchExists(ctx context.Context, branch string) (bool, error) {
	_, resp, err := r.client.Repositories.GetBranch(ctx, r.owner, r.repo, branch, 0)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to get branch %s: %w", branch, err)
	}
	return true, nil
}

// DispatchWorkflow triggers a workflow_dispatch event for the given workflow
// file against a ref.
func (r *githubRepository) DispatchWorkflow(ctx context.Context, workflowFile, ref string) error {
	event := github.CreateWorkflowDispatchEventRequest{Ref: ref}
	_, err := r.client.Actions.CreateWorkflowDispatchEventByFileName(ctx, r.owner, r.repo, workflowFile, event)
	if err != nil {
		return fmt.Errorf("failed to dispatch workflow %s on %s: %w", workflowFile, ref, err)
	}
	return nil
}

// LinkSubIssue creates the sub-issue link relation. The endpoint is not
// covered by the typed client surface, so it goes through the generic
// request escape hatch.
func (r *githubRepository) LinkSubIssue(ctx context.Context, parentNumber int, subIssueID int64) error {
	u := fmt.Sprintf("repos/%s/%s/issues/%d/sub_issues", r.owner, r.repo, parentNumber)
	req, err := r.client.NewRequest(http.MethodPost, u, map[string]int64{"sub_issue_id": subIssueID})
	if err != nil {
		return fmt.Errorf("failed to build sub-issue link request: %w", err)
	}
	if _, err := r.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("failed to link sub-issue %d to issue #%d: %w", subIssueID, parentNumber, err)
	}
	return nil
}
