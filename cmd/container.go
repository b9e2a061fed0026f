package cmd

import (
	"context"
	"fmt"

	"github.com/JeremyDev87/leonidas/internal/config"
	"github.com/JeremyDev87/leonidas/internal/logger"
	"github.com/JeremyDev87/leonidas/internal/orchestrator"
	"github.com/JeremyDev87/leonidas/internal/repository"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo     repository.FileSystemRepository
	gitRepo    repository.GitRepository
	ghRepo     repository.GithubExtendedRepository
	reportRepo repository.ReportRepository
	workflow   *orchestrator.IssueWorkflow
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())

	// The local checkout is optional; it only backs owner/repo and branch
	// defaults when configuration leaves them unset.
	gitRepo, gitErr := repository.NewGitRepository()
	if gitErr != nil {
		log.Debug("no local git repository available", zap.Error(gitErr))
	}
	if (cfg.GithubOwner == "" || cfg.GithubRepo == "") && gitRepo != nil {
		owner, repo, originErr := gitRepo.OriginOwnerRepo(context.Background())
		if originErr != nil {
			log.Debug("could not derive owner/repo from origin remote", zap.Error(originErr))
		} else {
			if cfg.GithubOwner == "" {
				cfg.GithubOwner = owner
			}
			if cfg.GithubRepo == "" {
				cfg.GithubRepo = repo
			}
		}
	}

	// GitHub access degrades to a rejecting stub when no token is configured,
	// so command wiring stays uniform.
	var ghRepo repository.GithubExtendedRepository
	if cfg.GithubToken != "" {
		ghRepo, err = repository.NewGithubExtendedRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	} else {
		log.Warn("no GitHub token configured, remote operations will fail")
		ghRepo = repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo)
	}

	reportRepo := repository.NewJSONReportRepository(fsRepo, cfg.ReportDir)
	workflow := orchestrator.NewIssueWorkflow(cfg, ghRepo, reportRepo, log)

	return &container{
		cfg:        cfg,
		logger:     log,
		fsRepo:     fsRepo,
		gitRepo:    gitRepo,
		ghRepo:     ghRepo,
		reportRepo: reportRepo,
		workflow:   workflow,
	}, nil
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(NewProcessIssueCmd(c))
	rootCmd.AddCommand(NewPostMergeCmd(c))
	rootCmd.AddCommand(NewOpenPRCmd(c))
	rootCmd.AddCommand(NewTriggerCICmd(c))
	rootCmd.AddCommand(NewCommentCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
