package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JeremyDev87/leonidas/internal/domain"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// ReportFilePermissions defines the permissions for report files
	ReportFilePermissions = 0600
	// ReportDirPermissions defines the permissions for the report directory
	ReportDirPermissions = 0700
	// reportLockTimeout is the maximum time to wait for the report lock
	reportLockTimeout = 30 * time.Second
	// reportLockRetryInterval is the interval between lock retry attempts
	reportLockRetryInterval = 100 * time.Millisecond
)

// ReportRepository persists run reports as artifacts of a workflow run.
type ReportRepository interface {
	Save(ctx context.Context, report *domain.RunReport) error
	Load(ctx context.Context, runID string) (*domain.RunReport, error)
}

// JSONReportRepository implements ReportRepository using JSON file storage.
// Writes are lock-guarded so concurrent matrix jobs sharing a workspace do
// not interleave.
type JSONReportRepository struct {
	fs        afero.Fs
	reportDir string
}

// NewJSONReportRepository creates a new JSON-based report repository.
func NewJSONReportRepository(fs afero.Fs, reportDir string) ReportRepository {
	if reportDir == "" {
		reportDir = ".leonidas-runs"
	}
	return &JSONReportRepository{
		fs:        fs,
		reportDir: reportDir,
	}
}

// Save persists a run report, writing atomically via a temp file.
func (r *JSONReportRepository) Save(ctx context.Context, report *domain.RunReport) error {
	if err := r.fs.MkdirAll(r.reportDir, ReportDirPermissions); err != nil {
		return fmt.Errorf("failed to ensure report directory: %w", err)
	}
	filename := r.reportFilename(report.RunID)
	lock := flock.New(r.lockFilename(report.RunID))
	lockCtx, cancel := context.WithTimeout(ctx, reportLockTimeout)
	defer cancel()
	locked, err := r.acquireLock(lockCtx, lock)
	if err != nil {
		return fmt.Errorf("failed to acquire report lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire report lock within timeout")
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock report file: %v\n", unlockErr)
			return
		}
		// flock leaves its lock file behind; drop it so the report directory
		// holds only reports
		if removeErr := os.Remove(lock.Path()); removeErr != nil && !os.IsNotExist(removeErr) {
			fmt.Fprintf(os.Stderr, "warning: failed to remove report lock file: %v\n", removeErr)
		}
	}()
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}
	tempFile := filename + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, data, ReportFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp report file: %w", err)
	}
	if err := r.fs.Rename(tempFile, filename); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp report file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename report file: %w", err)
	}
	return nil
}

// Load reads back a run report by run ID.
func (r *JSONReportRepository) Load(_ context.Context, runID string) (*domain.RunReport, error) {
	data, err := afero.ReadFile(r.fs, r.reportFilename(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no report found for run %s", runID)
		}
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run report: %w", err)
	}
	return &report, nil
}

func (r *JSONReportRepository) acquireLock(ctx context.Context, lock *flock.Flock) (bool, error) {
	// uncontended saves should not wait out a retry interval
	locked, err := lock.TryLock()
	if err != nil || locked {
		return locked, err
	}
	ticker := time.NewTicker(reportLockRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			locked, err := lock.TryLock()
			if err != nil {
				return false, err
			}
			if locked {
				return true, nil
			}
		}
	}
}

func (r *JSONReportRepository) reportFilename(runID string) string {
	return filepath.Join(r.reportDir, fmt.Sprintf("run-%s.json", runID))
}

func (r *JSONReportRepository) lockFilename(runID string) string {
	return filepath.Join(r.reportDir, fmt.Sprintf(".run-%s.lock", runID))
}
