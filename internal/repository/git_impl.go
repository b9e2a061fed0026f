package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

// gitRepository is the implementation of the GitRepository interface.

type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the repository in the current working directory.
func NewGitRepository() (GitRepository, error) {
	repo, err := git.PlainOpen(".")
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo}, nil
}

// OriginOwnerRepo derives (owner, repo) from the origin remote URL.
func (r *gitRepository) OriginOwnerRepo(_ context.Context) (string, string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("failed to get origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL")
	}
	owner, repo, err := parseRemoteURL(urls[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to parse origin URL: %w", err)
	}
	return owner, repo, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r *gitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch: %s", head.Name())
	}
	return head.Name().Short(), nil
}

// parseRemoteURL extracts owner and repo from an HTTPS or SSH remote URL.
// Supports "https://github.com/owner/repo(.git)" and
// "git@github.com:owner/repo(.git)".
func parseRemoteURL(url string) (string, string, error) {
	trimmed := strings.TrimSuffix(url, ".git")
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimPrefix(trimmed, "ssh://")
	trimmed = strings.TrimPrefix(trimmed, "git@")
	// SSH form uses a colon between host and path
	trimmed = strings.Replace(trimmed, ":", "/", 1)

	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("unrecognized remote URL format: %q", url)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
