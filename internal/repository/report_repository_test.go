package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONReportRepository(t *testing.T) {
	t.Run("Should save and load a run report", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "runs")
		repo := NewJSONReportRepository(afero.NewOsFs(), dir)
		ctx := context.Background()
		report := domain.NewRunReport("abc-123", 42)
		report.AddStep(domain.StepTypeFindPlan)
		report.MarkStepStarted(domain.StepTypeFindPlan)
		report.ResolveStep(domain.StepTypeFindPlan, domain.StepStatusCompleted, map[string]any{"plan_found": true}, nil)
		report.Status = domain.WorkflowStatusCompleted
		require.NoError(t, repo.Save(ctx, report))
		loaded, err := repo.Load(ctx, "abc-123")
		require.NoError(t, err)
		assert.Equal(t, "abc-123", loaded.RunID)
		assert.Equal(t, 42, loaded.IssueNumber)
		assert.Equal(t, domain.WorkflowStatusCompleted, loaded.Status)
		require.Len(t, loaded.Steps, 1)
		assert.Equal(t, domain.StepStatusCompleted, loaded.Steps[0].Status)
	})
	t.Run("Should overwrite an existing report for the same run", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "runs")
		repo := NewJSONReportRepository(afero.NewOsFs(), dir)
		ctx := context.Background()
		report := domain.NewRunReport("abc-123", 42)
		require.NoError(t, repo.Save(ctx, report))
		report.Status = domain.WorkflowStatusFailed
		require.NoError(t, repo.Save(ctx, report))
		loaded, err := repo.Load(ctx, "abc-123")
		require.NoError(t, err)
		assert.Equal(t, domain.WorkflowStatusFailed, loaded.Status)
	})
	t.Run("Should not leave a lock file behind after saving", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "runs")
		repo := NewJSONReportRepository(afero.NewOsFs(), dir)
		require.NoError(t, repo.Save(context.Background(), domain.NewRunReport("abc-123", 42)))
		_, err := os.Stat(filepath.Join(dir, ".run-abc-123.lock"))
		assert.True(t, os.IsNotExist(err))
	})
	t.Run("Should acquire an uncontended lock without waiting", func(t *testing.T) {
		dir := t.TempDir()
		repo := NewJSONReportRepository(afero.NewOsFs(), dir).(*JSONReportRepository)
		lock := flock.New(filepath.Join(dir, ".probe.lock"))
		// An already-canceled context still permits the immediate first attempt
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		locked, err := repo.acquireLock(ctx, lock)
		require.NoError(t, err)
		assert.True(t, locked)
		require.NoError(t, lock.Unlock())
	})
	t.Run("Should fail to load a missing run", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "runs")
		repo := NewJSONReportRepository(afero.NewOsFs(), dir)
		_, err := repo.Load(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorContains(t, err, "no report found for run missing")
	})
}
