package usecase

import (
	"context"

	"github.com/JeremyDev87/leonidas/internal/repository"
	"go.uber.org/zap"
)

// TriggerCIUseCase dispatches a CI workflow against a branch. The whole
// operation is non-critical: it never raises, degrading to log entries on
// any failure.
type TriggerCIUseCase struct {
	GithubRepo          repository.GithubExtendedRepository
	DefaultWorkflowFile string
	Logger              *zap.Logger
}

// Execute verifies the branch exists on the remote and, if so, dispatches
// the workflow. An error resolving the branch counts as "does not exist";
// a dispatch failure resolves to a note that manual triggering may be
// required.
func (uc *TriggerCIUseCase) Execute(ctx context.Context, branch, workflowFile string) {
	if workflowFile == "" {
		workflowFile = uc.DefaultWorkflowFile
	}
	exists, err := uc.GithubRepo.BranchExists(ctx, branch)
	if err != nil {
		uc.Logger.Warn("could not verify branch on remote, skipping CI dispatch",
			zap.String("branch", branch),
			zap.Error(err))
		return
	}
	if !exists {
		uc.Logger.Info("branch not found on remote, skipping CI dispatch",
			zap.String("branch", branch))
		return
	}
	if err := uc.GithubRepo.DispatchWorkflow(ctx, workflowFile, branch); err != nil {
		uc.Logger.Info("workflow dispatch failed, CI may need manual triggering",
			zap.String("workflow", workflowFile),
			zap.String("branch", branch),
			zap.Error(err))
	}
}
