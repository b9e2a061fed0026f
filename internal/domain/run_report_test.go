package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReport(t *testing.T) {
	t.Run("Should track a step through its lifecycle", func(t *testing.T) {
		report := NewRunReport("run-1", 42)
		assert.Equal(t, WorkflowStatusPending, report.Status)
		report.AddStep(StepTypeFindPlan)
		require.Len(t, report.Steps, 1)
		assert.Equal(t, StepStatusPending, report.Steps[0].Status)
		report.MarkStepStarted(StepTypeFindPlan)
		assert.Equal(t, StepStatusRunning, report.Steps[0].Status)
		report.ResolveStep(StepTypeFindPlan, StepStatusCompleted, map[string]any{"plan_found": true}, nil)
		assert.Equal(t, StepStatusCompleted, report.Steps[0].Status)
		require.NotNil(t, report.Steps[0].CompletedAt)
		assert.Equal(t, true, report.Steps[0].Detail["plan_found"])
	})
	t.Run("Should mark the run failed when a step fails", func(t *testing.T) {
		report := NewRunReport("run-2", 42)
		report.AddStep(StepTypeLinkSubIssues)
		report.MarkStepStarted(StepTypeLinkSubIssues)
		report.ResolveStep(StepTypeLinkSubIssues, StepStatusFailed, nil, errors.New("remote unavailable"))
		assert.Equal(t, WorkflowStatusFailed, report.Status)
		assert.Equal(t, "remote unavailable", report.Error)
		assert.Equal(t, "remote unavailable", report.Steps[0].Error)
	})
	t.Run("Should not resolve a step that was never started", func(t *testing.T) {
		report := NewRunReport("run-3", 42)
		report.AddStep(StepTypeTriggerCI)
		report.ResolveStep(StepTypeTriggerCI, StepStatusCompleted, nil, nil)
		assert.Equal(t, StepStatusPending, report.Steps[0].Status)
	})
}
