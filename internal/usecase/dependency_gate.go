package usecase

import (
	"context"
	"fmt"

	"github.com/JeremyDev87/leonidas/internal/repository"
)

// DependencyGateUseCase decides whether a dependency issue is closed, as the
// precondition for unblocking a dependent sub-issue.
type DependencyGateUseCase struct {
	GithubRepo repository.IssueRepository
}

// Execute performs a live read of the dependency issue's state. A missing
// issue surfaces as the repository's NotFoundError, naming the issue and its
// repository, since that is a permanent planning error the user must fix.
// Every other failure is wrapped with whatever message the remote supplied,
// framed as retryable for the caller.
func (uc *DependencyGateUseCase) Execute(ctx context.Context, issueNumber int) (bool, error) {
	issue, err := uc.GithubRepo.GetIssue(ctx, issueNumber)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, err
		}
		return false, fmt.Errorf("failed to check dependency issue #%d: %s",
			issueNumber, repository.RemoteMessage(err))
	}
	return issue.IsClosed(), nil
}
