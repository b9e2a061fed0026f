package usecase

import (
	"context"
	"fmt"

	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/JeremyDev87/leonidas/internal/repository"
	"go.uber.org/zap"
)

// PostProcessPRUseCase locates the pull request built from an issue's branch
// and copies a constrained subset of issue metadata onto it: labels (minus
// the internal tracking label) and the issue author as assignee.
type PostProcessPRUseCase struct {
	GithubRepo    repository.GithubExtendedRepository
	TrackingLabel string
	Logger        *zap.Logger
}

// Execute resolves the PR for the issue's branch and propagates metadata.
// No PR yet is a normal outcome, logged and returned without reading the
// issue. Label and assignee propagation are each independently best-effort;
// their failures become warnings and never prevent the other step or the
// normal return.
func (uc *PostProcessPRUseCase) Execute(ctx context.Context, issueNumber int, branchPrefix string) error {
	branch := fmt.Sprintf("%s%d", branchPrefix, issueNumber)
	prNumber, err := uc.GithubRepo.GetPRForBranch(ctx, branch)
	if err != nil {
		return fmt.Errorf("failed to resolve pull request for branch %s: %w", branch, err)
	}
	if prNumber == nil {
		uc.Logger.Info("no pull request found for branch yet",
			zap.Int("issue", issueNumber),
			zap.String("branch", branch))
		return nil
	}
	issue, err := uc.GithubRepo.GetIssue(ctx, issueNumber)
	if err != nil {
		return fmt.Errorf("failed to read issue #%d for post-processing: %w", issueNumber, err)
	}

	labelOutcome := uc.propagateLabels(ctx, *prNumber, issue)
	assigneeOutcome := uc.propagateAssignee(ctx, *prNumber, issue)
	uc.Logger.Debug("pull request post-processing finished",
		zap.Int("pr", *prNumber),
		zap.String("labels", string(labelOutcome)),
		zap.String("assignee", string(assigneeOutcome)))
	return nil
}

// propagateLabels copies the issue's labels onto the PR, excluding the
// tracking label. When exclusion leaves nothing, the call is skipped rather
// than issued with an empty set.
func (uc *PostProcessPRUseCase) propagateLabels(ctx context.Context, prNumber int, issue *domain.Issue) domain.StepStatus {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		if label != uc.TrackingLabel {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return domain.StepStatusSkipped
	}
	if err := uc.GithubRepo.AddLabels(ctx, prNumber, labels); err != nil {
		uc.Logger.Warn("failed to copy labels to pull request",
			zap.Int("pr", prNumber),
			zap.Error(err))
		return domain.StepStatusTolerated
	}
	return domain.StepStatusCompleted
}

// propagateAssignee assigns the issue author to the PR when the author
// identity is known.
func (uc *PostProcessPRUseCase) propagateAssignee(ctx context.Context, prNumber int, issue *domain.Issue) domain.StepStatus {
	if issue.Author == "" {
		return domain.StepStatusSkipped
	}
	if err := uc.GithubRepo.AddAssignees(ctx, prNumber, []string{issue.Author}); err != nil {
		uc.Logger.Warn("failed to assign issue author to pull request",
			zap.Int("pr", prNumber),
			zap.String("assignee", issue.Author),
			zap.Error(err))
		return domain.StepStatusTolerated
	}
	return domain.StepStatusCompleted
}
