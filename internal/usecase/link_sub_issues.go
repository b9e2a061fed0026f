package usecase

import (
	"context"

	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/JeremyDev87/leonidas/internal/repository"
	"go.uber.org/zap"
)

// LinkSubIssuesUseCase links a set of sub-issues to a parent issue.
//
// The policy is fail-one-continue-all: an error on any item increments the
// failure count and is reported as a warning, never aborting the remaining
// items. Partial linking is still valuable and the caller needs accurate
// counts to decide on remediation.
type LinkSubIssuesUseCase struct {
	GithubRepo repository.GithubExtendedRepository
	Logger     *zap.Logger
}

// Execute attempts each sub-issue exactly once, in input order, and returns
// aggregate counts covering the whole list. An empty list yields {0, 0}.
func (uc *LinkSubIssuesUseCase) Execute(ctx context.Context, parentNumber int, subNumbers []int) domain.LinkResult {
	var result domain.LinkResult
	for _, subNumber := range subNumbers {
		if err := uc.linkOne(ctx, parentNumber, subNumber); err != nil {
			result.Failed++
			uc.Logger.Warn("failed to link sub-issue to parent",
				zap.Int("parent", parentNumber),
				zap.Int("sub_issue", subNumber),
				zap.Error(err))
			continue
		}
		result.Linked++
	}
	return result
}

// linkOne resolves the sub-issue's internal identifier and creates the link
// relation. Numbers are caller-facing; the link endpoint requires the
// internal id, so each item costs one extra read.
func (uc *LinkSubIssuesUseCase) linkOne(ctx context.Context, parentNumber, subNumber int) error {
	issue, err := uc.GithubRepo.GetIssue(ctx, subNumber)
	if err != nil {
		return err
	}
	return uc.GithubRepo.LinkSubIssue(ctx, parentNumber, issue.ID)
}
