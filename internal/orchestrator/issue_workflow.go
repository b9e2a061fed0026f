package orchestrator

import (
	"context"
	"fmt"

	"github.com/JeremyDev87/leonidas/internal/config"
	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/JeremyDev87/leonidas/internal/repository"
	"github.com/JeremyDev87/leonidas/internal/usecase"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// IssueWorkflow coordinates the issue-driven coding flow: it reads sub-issue
// metadata, gates on dependencies, discovers the plan comment, and links
// sub-issues when the plan decomposes the work. The remote issue tracker is
// the only system of record; each run starts from live remote state.
type IssueWorkflow struct {
	config     *config.Config
	github     repository.GithubExtendedRepository
	reportRepo repository.ReportRepository
	logger     *zap.Logger

	findPlan    *usecase.FindPlanCommentUseCase
	gate        *usecase.DependencyGateUseCase
	link        *usecase.LinkSubIssuesUseCase
	postProcess *usecase.PostProcessPRUseCase
	triggerCI   *usecase.TriggerCIUseCase
}

// NewIssueWorkflow wires the workflow with its use cases.
func NewIssueWorkflow(
	cfg *config.Config,
	github repository.GithubExtendedRepository,
	reportRepo repository.ReportRepository,
	logger *zap.Logger,
) *IssueWorkflow {
	return &IssueWorkflow{
		config:     cfg,
		github:     github,
		reportRepo: reportRepo,
		logger:     logger,
		findPlan: &usecase.FindPlanCommentUseCase{
			GithubRepo:  github,
			TrustedBots: cfg.TrustedBots,
			Logger:      logger,
		},
		gate: &usecase.DependencyGateUseCase{
			GithubRepo: github,
		},
		link: &usecase.LinkSubIssuesUseCase{
			GithubRepo: github,
			Logger:     logger,
		},
		postProcess: &usecase.PostProcessPRUseCase{
			GithubRepo:    github,
			TrackingLabel: cfg.TrackingLabel,
			Logger:        logger,
		},
		triggerCI: &usecase.TriggerCIUseCase{
			GithubRepo:          github,
			DefaultWorkflowFile: cfg.WorkflowFile,
			Logger:              logger,
		},
	}
}

// requireRemoteAccess validates that GitHub credentials are available before
// any remote step runs. A token loaded from config or .env satisfies it; with
// no token at all the env check names the variable the user must set.
func (w *IssueWorkflow) requireRemoteAccess() error {
	if w.config.GithubToken != "" {
		return nil
	}
	if err := ValidateEnvironmentVariables([]string{"GITHUB_TOKEN"}); err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}
	return nil
}

// ProcessIssue runs the pre-work phase for an issue: metadata parsing,
// dependency gating, plan discovery, classification, and sub-issue linking.
// A blocked dependency or a missing plan halts the run gracefully.
func (w *IssueWorkflow) ProcessIssue(ctx context.Context, issueNumber int) error {
	if err := ValidateIssueNumber(issueNumber); err != nil {
		return err
	}
	if err := w.requireRemoteAccess(); err != nil {
		return err
	}
	runner := NewStepRunner(w.reportRepo, w.logger, issueNumber)
	w.logger.Info("processing issue",
		zap.Int("issue", issueNumber),
		zap.String("run_id", runner.RunID()))

	var metadata *domain.SubIssueMetadata
	var plan *domain.Comment
	var subRefs []int
	var decomposed bool

	runner.AddStep(Step{
		Name:      "parse sub-issue metadata",
		Type:      domain.StepTypeParseMetadata,
		Retryable: true,
		Execute: func(stepCtx context.Context) (map[string]any, error) {
			issue, err := w.github.GetIssue(stepCtx, issueNumber)
			if err != nil {
				return nil, err
			}
			metadata = domain.ParseSubIssueMetadata(issue.Body)
			return map[string]any{"has_metadata": metadata != nil}, nil
		},
	})
	runner.AddStep(Step{
		Name:      "check dependency gate",
		Type:      domain.StepTypeDependencyGate,
		Retryable: true,
		Execute: func(stepCtx context.Context) (map[string]any, error) {
			if metadata == nil || metadata.DependsOn == nil {
				return nil, ErrSkipStep
			}
			closed, err := w.gate.Execute(stepCtx, *metadata.DependsOn)
			if err != nil {
				return nil, err
			}
			if !closed {
				w.logger.Info("issue is blocked on an open dependency",
					zap.Int("issue", issueNumber),
					zap.Int("depends_on", *metadata.DependsOn))
				return map[string]any{"blocked_on": *metadata.DependsOn}, ErrHaltRun
			}
			return map[string]any{"dependency_closed": *metadata.DependsOn}, nil
		},
	})
	runner.AddStep(Step{
		Name:      "find plan comment",
		Type:      domain.StepTypeFindPlan,
		Retryable: true,
		Execute: func(stepCtx context.Context) (map[string]any, error) {
			comment, err := w.findPlan.Execute(stepCtx, issueNumber)
			if err != nil {
				return nil, err
			}
			if comment == nil {
				w.logger.Info("no plan comment found", zap.Int("issue", issueNumber))
				return map[string]any{"plan_found": false}, ErrHaltRun
			}
			plan = comment
			return map[string]any{"plan_found": true, "comment_id": comment.ID}, nil
		},
	})
	runner.AddStep(Step{
		Name: "classify plan",
		Type: domain.StepTypeClassifyPlan,
		Execute: func(_ context.Context) (map[string]any, error) {
			decomposed = domain.IsDecomposedPlan(plan.Body)
			subRefs = domain.ExtractSubIssueRefs(plan.Body)
			return map[string]any{
				"decomposed":     decomposed,
				"sub_issue_refs": len(subRefs),
			}, nil
		},
	})
	runner.AddStep(Step{
		Name:       "link sub-issues",
		Type:       domain.StepTypeLinkSubIssues,
		BestEffort: true,
		Execute: func(stepCtx context.Context) (map[string]any, error) {
			if !decomposed || len(subRefs) == 0 {
				return nil, ErrSkipStep
			}
			result := w.link.Execute(stepCtx, issueNumber, subRefs)
			return map[string]any{
				"linked": result.Linked,
				"failed": result.Failed,
			}, nil
		},
	})
	return runner.Execute(ctx)
}

// PostMerge runs the post-merge phase for an issue: PR metadata propagation
// followed by a best-effort CI dispatch against the issue branch.
func (w *IssueWorkflow) PostMerge(ctx context.Context, issueNumber int, workflowFile string) error {
	if err := ValidateIssueNumber(issueNumber); err != nil {
		return err
	}
	if err := w.requireRemoteAccess(); err != nil {
		return err
	}
	branch := fmt.Sprintf("%s%d", w.config.BranchPrefix, issueNumber)
	if err := ValidateBranchName(branch); err != nil {
		return err
	}
	runner := NewStepRunner(w.reportRepo, w.logger, issueNumber)
	w.logger.Info("running post-merge workflow",
		zap.Int("issue", issueNumber),
		zap.String("branch", branch),
		zap.String("run_id", runner.RunID()))

	runner.AddStep(Step{
		Name:      "post-process pull request",
		Type:      domain.StepTypePostProcessPR,
		Retryable: true,
		Execute: func(stepCtx context.Context) (map[string]any, error) {
			return nil, w.postProcess.Execute(stepCtx, issueNumber, w.config.BranchPrefix)
		},
	})
	runner.AddStep(Step{
		Name:       "trigger CI workflow",
		Type:       domain.StepTypeTriggerCI,
		BestEffort: true,
		Execute: func(stepCtx context.Context) (map[string]any, error) {
			w.triggerCI.Execute(stepCtx, branch, workflowFile)
			return map[string]any{"branch": branch}, nil
		},
	})
	return runner.Execute(ctx)
}

// TriggerCI dispatches the CI workflow against an arbitrary branch. The
// dispatch itself is best-effort; only an invalid branch name is an error.
func (w *IssueWorkflow) TriggerCI(ctx context.Context, branch, workflowFile string) error {
	if err := ValidateBranchName(branch); err != nil {
		return err
	}
	if err := w.requireRemoteAccess(); err != nil {
		return err
	}
	w.triggerCI.Execute(ctx, branch, workflowFile)
	return nil
}

// OpenDraftPR creates a draft pull request from the issue's branch onto the
// base branch. It returns the PR URL, or an empty string when a PR for the
// branch already exists.
func (w *IssueWorkflow) OpenDraftPR(ctx context.Context, issueNumber int, title string) (string, error) {
	if err := ValidateIssueNumber(issueNumber); err != nil {
		return "", err
	}
	if err := w.requireRemoteAccess(); err != nil {
		return "", err
	}
	branch := fmt.Sprintf("%s%d", w.config.BranchPrefix, issueNumber)
	if err := ValidateBranchName(branch); err != nil {
		return "", err
	}
	exists, err := w.github.BranchExists(ctx, branch)
	if err != nil {
		return "", fmt.Errorf("failed to check branch %s: %w", branch, err)
	}
	if !exists {
		return "", fmt.Errorf("branch %s does not exist on the remote", branch)
	}
	if title == "" {
		title = fmt.Sprintf("Resolve #%d", issueNumber)
	}
	body := fmt.Sprintf("Closes #%d", issueNumber)
	url, err := w.github.CreateDraftPR(ctx, branch, w.config.BaseBranch, title, body)
	if err != nil {
		return "", fmt.Errorf("failed to create draft pull request for issue #%d: %w", issueNumber, err)
	}
	if url == "" {
		w.logger.Info("pull request already exists for branch", zap.String("branch", branch))
	}
	return url, nil
}

// PostComment posts a comment on an issue, retrying transient remote
// failures with exponential backoff.
func (w *IssueWorkflow) PostComment(ctx context.Context, issueNumber int, body string) error {
	if err := ValidateIssueNumber(issueNumber); err != nil {
		return err
	}
	if body == "" {
		return fmt.Errorf("comment body cannot be empty")
	}
	if err := w.requireRemoteAccess(); err != nil {
		return err
	}
	retryStrategy := retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay))
	err := retry.Do(ctx, retryStrategy, func(retryCtx context.Context) error {
		if err := w.github.CreateComment(retryCtx, issueNumber, body); err != nil {
			if repository.IsNotFound(err) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to post comment on issue #%d: %w", issueNumber, err)
	}
	return nil
}
