package orchestrator

import (
	"context"

	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GithubExtendedRepository - implements ALL methods from GithubExtendedRepository interface
type mockGithubExtendedRepository struct{ mock.Mock }

// IssueRepository methods
func (m *mockGithubExtendedRepository) ListIssueComments(ctx context.Context, issueNumber int) ([]domain.Comment, error) {
	args := m.Called(ctx, issueNumber)
	if comments := args.Get(0); comments != nil {
		return comments.([]domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubExtendedRepository) GetIssue(ctx context.Context, issueNumber int) (*domain.Issue, error) {
	args := m.Called(ctx, issueNumber)
	if issue := args.Get(0); issue != nil {
		return issue.(*domain.Issue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubExtendedRepository) CreateComment(ctx context.Context, issueNumber int, body string) error {
	args := m.Called(ctx, issueNumber, body)
	return args.Error(0)
}

func (m *mockGithubExtendedRepository) AddLabels(ctx context.Context, issueNumber int, labels []string) error {
	args := m.Called(ctx, issueNumber, labels)
	return args.Error(0)
}

func (m *mockGithubExtendedRepository) AddAssignees(ctx context.Context, issueNumber int, assignees []string) error {
	args := m.Called(ctx, issueNumber, assignees)
	return args.Error(0)
}

// GithubExtendedRepository specific methods
func (m *mockGithubExtendedRepository) GetPRForBranch(ctx context.Context, branch string) (*int, error) {
	args := m.Called(ctx, branch)
	if number := args.Get(0); number != nil {
		return number.(*int), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubExtendedRepository) CreateDraftPR(ctx context.Context, head, base, title, body string) (string, error) {
	args := m.Called(ctx, head, base, title, body)
	return args.String(0), args.Error(1)
}

func (m *mockGithubExtendedRepository) BranchExists(ctx context.Context, branch string) (bool, error) {
	args := m.Called(ctx, branch)
	return args.Bool(0), args.Error(1)
}

func (m *mockGithubExtendedRepository) DispatchWorkflow(ctx context.Context, workflowFile, ref string) error {
	args := m.Called(ctx, workflowFile, ref)
	return args.Error(0)
}

func (m *mockGithubExtendedRepository) LinkSubIssue(ctx context.Context, parentNumber int, subIssueID int64) error {
	args := m.Called(ctx, parentNumber, subIssueID)
	return args.Error(0)
}

// Mock for ReportRepository
type mockReportRepository struct{ mock.Mock }

func (m *mockReportRepository) Save(ctx context.Context, report *domain.RunReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockReportRepository) Load(ctx context.Context, runID string) (*domain.RunReport, error) {
	args := m.Called(ctx, runID)
	if report := args.Get(0); report != nil {
		return report.(*domain.RunReport), args.Error(1)
	}
	return nil, args.Error(1)
}
