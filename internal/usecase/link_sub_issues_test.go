package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLinkSubIssuesUseCase_Execute(t *testing.T) {
	t.Run("Should link every sub-issue when all calls succeed", func(t *testing.T) {
		ghRepo := new(mockGithubExtendedRepository)
		uc := &LinkSubIssuesUseCase{GithubRepo: ghRepo, Logger: zap.NewNop()}
		ctx := context.Background()
		ghRepo.On("GetIssue", ctx, 36).Return(&domain.Issue{Number: 36, ID: 3600}, nil)
		ghRepo.On("GetIssue", ctx, 37).Return(&domain.Issue{Number: 37, ID: 3700}, nil)
		ghRepo.On("LinkSubIssue", ctx, 35, int64(3600)).Return(nil)
		ghRepo.On("LinkSubIssue", ctx, 35, int64(3700)).Return(nil)
		result := uc.Execute(ctx, 35, []int{36, 37})
		assert.Equal(t, domain.LinkResult{Linked: 2, Failed: 0}, result)
		ghRepo.AssertExpectations(t)
	})
	t.Run("Should continue after a failed item and count it", func(t *testing.T) {
		ghRepo := new(mockGithubExtendedRepository)
		uc := &LinkSubIssuesUseCase{GithubRepo: ghRepo, Logger: zap.NewNop()}
		ctx := context.Background()
		ghRepo.On("GetIssue", ctx, 36).Return(&domain.Issue{Number: 36, ID: 3600}, nil)
		ghRepo.On("LinkSubIssue", ctx, 35, int64(3600)).Return(nil)
		ghRepo.On("GetIssue", ctx, 37).Return(nil, errors.New("boom"))
		result := uc.Execute(ctx, 35, []int{36, 37})
		assert.Equal(t, domain.LinkResult{Linked: 1, Failed: 1}, result)
		ghRepo.AssertNumberOfCalls(t, "GetIssue", 2)
		ghRepo.AssertExpectations(t)
	})
	t.Run("Should count a failed link call without retrying it", func(t *testing.T) {
		ghRepo := new(mockGithubExtendedRepository)
		uc := &LinkSubIssuesUseCase{GithubRepo: ghRepo, Logger: zap.NewNop()}
		ctx := context.Background()
		ghRepo.On("GetIssue", ctx, 36).Return(&domain.Issue{Number: 36, ID: 3600}, nil)
		ghRepo.On("LinkSubIssue", ctx, 35, int64(3600)).Return(errors.New("already linked elsewhere"))
		result := uc.Execute(ctx, 35, []int{36})
		assert.Equal(t, domain.LinkResult{Linked: 0, Failed: 1}, result)
		ghRepo.AssertNumberOfCalls(t, "LinkSubIssue", 1)
	})
	t.Run("Should return zero counts for an empty list", func(t *testing.T) {
		ghRepo := new(mockGithubExtendedRepository)
		uc := &LinkSubIssuesUseCase{GithubRepo: ghRepo, Logger: zap.NewNop()}
		result := uc.Execute(context.Background(), 35, nil)
		assert.Equal(t, domain.LinkResult{Linked: 0, Failed: 0}, result)
		ghRepo.AssertNotCalled(t, "GetIssue")
		ghRepo.AssertNotCalled(t, "LinkSubIssue")
	})
}
