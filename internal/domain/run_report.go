package domain

import (
	"time"
)

// WorkflowStatus represents the overall status of an issue workflow run.
type WorkflowStatus string

const (
	WorkflowStatusPending   WorkflowStatus = "pending"
	WorkflowStatusRunning   WorkflowStatus = "running"
	WorkflowStatusCompleted WorkflowStatus = "completed"
	WorkflowStatusFailed    WorkflowStatus = "failed"
)

// StepStatus is the recorded outcome of a single workflow step. Best-effort
// steps that fail resolve to StepStatusTolerated instead of StepStatusFailed,
// keeping the fail-one-continue-all policy visible in the run report.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusTolerated StepStatus = "tolerated"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepType identifies a workflow step.
type StepType string

const (
	StepTypeParseMetadata  StepType = "parse_metadata"
	StepTypeDependencyGate StepType = "dependency_gate"
	StepTypeFindPlan       StepType = "find_plan"
	StepTypeClassifyPlan   StepType = "classify_plan"
	StepTypeLinkSubIssues  StepType = "link_sub_issues"
	StepTypePostProcessPR  StepType = "post_process_pr"
	StepTypeTriggerCI      StepType = "trigger_ci"
)

// RunReport is the per-run record of step outcomes, written as an artifact at
// the end of a workflow run. It is never read back to drive behavior; the
// remote issue tracker stays the system of record.
type RunReport struct {
	RunID       string         `json:"run_id"`
	IssueNumber int            `json:"issue_number"`
	StartedAt   time.Time      `json:"started_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Steps       []StepRecord   `json:"steps"`
	Status      WorkflowStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
}

// StepRecord represents a single step in the workflow run.
type StepRecord struct {
	Type        StepType       `json:"type"`
	Status      StepStatus     `json:"status"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Detail      map[string]any `json:"detail,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// NewRunReport creates an empty run report.
func NewRunReport(runID string, issueNumber int) *RunReport {
	now := time.Now()
	return &RunReport{
		RunID:       runID,
		IssueNumber: issueNumber,
		StartedAt:   now,
		UpdatedAt:   now,
		Steps:       []StepRecord{},
		Status:      WorkflowStatusPending,
	}
}

// AddStep appends a pending step record.
func (r *RunReport) AddStep(stepType StepType) {
	r.Steps = append(r.Steps, StepRecord{
		Type:      stepType,
		Status:    StepStatusPending,
		StartedAt: time.Now(),
	})
	r.UpdatedAt = time.Now()
}

// MarkStepStarted marks the pending record of the given type as running.
func (r *RunReport) MarkStepStarted(stepType StepType) {
	for i := range r.Steps {
		if r.Steps[i].Type == stepType && r.Steps[i].Status == StepStatusPending {
			r.Steps[i].Status = StepStatusRunning
			r.Steps[i].StartedAt = time.Now()
			r.UpdatedAt = time.Now()
			break
		}
	}
}

// ResolveStep finalizes the running record of the given type with a terminal
// status and optional detail.
func (r *RunReport) ResolveStep(stepType StepType, status StepStatus, detail map[string]any, err error) {
	now := time.Now()
	for i := range r.Steps {
		if r.Steps[i].Type != stepType || r.Steps[i].Status != StepStatusRunning {
			continue
		}
		r.Steps[i].Status = status
		r.Steps[i].CompletedAt = &now
		r.Steps[i].Detail = detail
		if err != nil {
			r.Steps[i].Error = err.Error()
		}
		r.UpdatedAt = now
		break
	}
	if status == StepStatusFailed {
		r.Status = WorkflowStatusFailed
		if err != nil {
			r.Error = err.Error()
		}
	}
}
