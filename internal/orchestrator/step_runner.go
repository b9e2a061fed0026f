package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/JeremyDev87/leonidas/internal/repository"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Control-flow sentinels a step may return instead of a real error.
var (
	// ErrSkipStep marks a step whose preconditions are absent. The step is
	// recorded as skipped and the run continues with the next step.
	ErrSkipStep = errors.New("step skipped")
	// ErrHaltRun stops the run after the current step without failing it.
	// Remaining steps are recorded as skipped and the run completes.
	ErrHaltRun = errors.New("run halted")
)

// Step is a single unit of work in an issue workflow.
//
// A step's side effects are idempotent against the remote tracker, so a
// failed run is recovered by re-running the whole workflow rather than by
// compensating completed steps.
type Step struct {
	Name       string
	Type       domain.StepType
	BestEffort bool
	Retryable  bool
	Execute    func(ctx context.Context) (detail map[string]any, err error)
}

// StepRunner executes an ordered list of steps, recording each outcome in a
// run report that is persisted as an artifact when the run ends.
type StepRunner struct {
	runID      string
	report     *domain.RunReport
	reportRepo repository.ReportRepository
	logger     *zap.Logger
	steps      []Step
}

// NewStepRunner creates a runner for one workflow run against one issue.
func NewStepRunner(reportRepo repository.ReportRepository, logger *zap.Logger, issueNumber int) *StepRunner {
	runID := uuid.New().String()
	return &StepRunner{
		runID:      runID,
		report:     domain.NewRunReport(runID, issueNumber),
		reportRepo: reportRepo,
		logger:     logger,
		steps:      []Step{},
	}
}

// AddStep adds a step to the run.
func (r *StepRunner) AddStep(step Step) {
	r.steps = append(r.steps, step)
	r.report.AddStep(step.Type)
}

// Execute runs the steps in order. A best-effort step that fails is recorded
// as tolerated and the run continues; any other failure finalizes the report
// and aborts. A step returning ErrHaltRun ends the run gracefully, recording
// the remaining steps as skipped.
func (r *StepRunner) Execute(ctx context.Context) error {
	r.report.Status = domain.WorkflowStatusRunning
	halted := false
	for _, step := range r.steps {
		r.report.MarkStepStarted(step.Type)
		if halted {
			r.report.ResolveStep(step.Type, domain.StepStatusSkipped, nil, nil)
			continue
		}
		detail, err := r.executeStep(ctx, step)
		switch {
		case err == nil:
			r.report.ResolveStep(step.Type, domain.StepStatusCompleted, detail, nil)
		case errors.Is(err, ErrSkipStep):
			r.report.ResolveStep(step.Type, domain.StepStatusSkipped, detail, nil)
			r.logger.Debug("step skipped", zap.String("step", step.Name))
		case errors.Is(err, ErrHaltRun):
			r.report.ResolveStep(step.Type, domain.StepStatusCompleted, detail, nil)
			r.logger.Info("workflow halted", zap.String("step", step.Name))
			halted = true
		case step.BestEffort:
			r.report.ResolveStep(step.Type, domain.StepStatusTolerated, detail, err)
			r.logger.Warn("best-effort step failed, continuing",
				zap.String("step", step.Name),
				zap.Error(err))
		default:
			r.report.ResolveStep(step.Type, domain.StepStatusFailed, detail, err)
			r.saveReport(ctx)
			return fmt.Errorf("step '%s' failed: %w", step.Name, err)
		}
	}
	r.report.Status = domain.WorkflowStatusCompleted
	r.saveReport(ctx)
	return nil
}

// executeStep runs a single step, retrying remote failures with exponential
// backoff when the step allows it. Control-flow sentinels and not-found
// errors are permanent.
func (r *StepRunner) executeStep(ctx context.Context, step Step) (map[string]any, error) {
	if !step.Retryable {
		return step.Execute(ctx)
	}
	var detail map[string]any
	retryStrategy := retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay))
	err := retry.Do(ctx, retryStrategy, func(retryCtx context.Context) error {
		// Check if context is canceled before executing
		select {
		case <-retryCtx.Done():
			return retryCtx.Err()
		default:
		}
		data, execErr := step.Execute(retryCtx)
		if execErr != nil {
			if errors.Is(execErr, ErrSkipStep) || errors.Is(execErr, ErrHaltRun) || repository.IsNotFound(execErr) {
				return execErr
			}
			return retry.RetryableError(execErr)
		}
		detail = data
		return nil
	})
	return detail, err
}

// RunID returns the identifier of this run, matching the report artifact name.
func (r *StepRunner) RunID() string {
	return r.runID
}

// Report returns the current run report.
func (r *StepRunner) Report() *domain.RunReport {
	return r.report
}

// saveReport persists the run report. Report persistence never fails the
// workflow itself.
func (r *StepRunner) saveReport(ctx context.Context) {
	if r.reportRepo == nil {
		return
	}
	if err := r.reportRepo.Save(context.WithoutCancel(ctx), r.report); err != nil {
		r.logger.Warn("failed to save run report",
			zap.String("run_id", r.runID),
			zap.Error(err))
	}
}
