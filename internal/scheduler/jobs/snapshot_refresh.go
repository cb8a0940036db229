package jobs

import (
	"context"
	"fmt"

	"github.com/jwhan/fintab/internal/analysis"
	"github.com/jwhan/fintab/pkg/logger"
)

// SnapshotRefreshJob re-runs analysis for every stored ticker so
// snapshots pick up newly filed quarters without a user request.
type SnapshotRefreshJob struct {
	service *analysis.Service
	repo    *analysis.Repository
	logger  *logger.Logger
}

// NewSnapshotRefreshJob creates a new snapshot refresh job
func NewSnapshotRefreshJob(service *analysis.Service, repo *analysis.Repository, log *logger.Logger) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		service: service,
		repo:    repo,
		logger:  log,
	}
}

// Name returns the job name
func (j *SnapshotRefreshJob) Name() string {
	return "snapshot_refresh"
}

// Schedule returns the cron schedule (daily at 7 AM UTC, after the
// ticker index refresh)
func (j *SnapshotRefreshJob) Schedule() string {
	return "0 0 7 * * *"
}

// Run re-analyzes all stored tickers. Individual failures are logged
// and skipped; the job fails only when every refresh fails.
func (j *SnapshotRefreshJob) Run(ctx context.Context) error {
	snapshots, err := j.repo.ListSnapshots(ctx, 0)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		j.logger.Debug("No stored snapshots to refresh")
		return nil
	}

	var failed int
	for _, snapshot := range snapshots {
		if _, err := j.service.Analyze(ctx, snapshot.Ticker); err != nil {
			failed++
			j.logger.WithError(err).WithField("ticker", snapshot.Ticker).Warn("Snapshot refresh failed")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"total":  len(snapshots),
		"failed": failed,
	}).Info("Snapshot refresh completed")

	if failed == len(snapshots) {
		return fmt.Errorf("all %d snapshot refreshes failed", failed)
	}
	return nil
}
