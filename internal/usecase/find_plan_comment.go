package usecase

import (
	"context"
	"fmt"

	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/JeremyDev87/leonidas/internal/repository"
	"go.uber.org/zap"
)

// FindPlanCommentUseCase selects the authoritative plan comment for an issue.
//
// Candidates are ranked by an ordered fallback chain:
// trusted author + structural marker, trusted author + legacy header, then
// the same two matchers over all comments. The untrusted fallback gives up
// the forged-plan protection the trust filter provides; it exists for
// installations where the bot identity cannot be verified and is logged as a
// warning when taken.
type FindPlanCommentUseCase struct {
	GithubRepo  repository.IssueRepository
	TrustedBots []string
	Logger      *zap.Logger
}

// discoveryStage pairs an author filter with a body matcher. Stages are
// evaluated lazily in precedence order; the first stage with any match wins.
type discoveryStage struct {
	trustedOnly bool
	matches     func(string) bool
}

// Execute returns the latest authoritative plan comment, or nil when no
// comment matches any stage. Within a stage the last match in fetch order
// wins; comments without body content never match.
func (uc *FindPlanCommentUseCase) Execute(ctx context.Context, issueNumber int) (*domain.Comment, error) {
	comments, err := uc.GithubRepo.ListIssueComments(ctx, issueNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for issue #%d: %w", issueNumber, err)
	}
	stages := []discoveryStage{
		{trustedOnly: true, matches: domain.ContainsPlanMarker},
		{trustedOnly: true, matches: domain.ContainsLegacyPlanHeader},
		{trustedOnly: false, matches: domain.ContainsPlanMarker},
		{trustedOnly: false, matches: domain.ContainsLegacyPlanHeader},
	}
	for _, stage := range stages {
		comment := uc.lastMatch(comments, stage)
		if comment == nil {
			continue
		}
		if !stage.trustedOnly && !uc.isTrusted(comment.Author) {
			uc.Logger.Warn("plan comment author is not on the trusted-bot allow-list",
				zap.Int("issue", issueNumber),
				zap.String("author", comment.Author))
		}
		return comment, nil
	}
	return nil, nil
}

func (uc *FindPlanCommentUseCase) lastMatch(comments []domain.Comment, stage discoveryStage) *domain.Comment {
	for i := len(comments) - 1; i >= 0; i-- {
		if comments[i].Body == "" {
			continue
		}
		if stage.trustedOnly && !uc.isTrusted(comments[i].Author) {
			continue
		}
		if stage.matches(comments[i].Body) {
			return &comments[i]
		}
	}
	return nil
}

func (uc *FindPlanCommentUseCase) isTrusted(author string) bool {
	for _, bot := range uc.TrustedBots {
		if bot == author {
			return true
		}
	}
	return false
}
