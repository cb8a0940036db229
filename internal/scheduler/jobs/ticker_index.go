package jobs

import (
	"context"
	"fmt"

	"github.com/jwhan/fintab/internal/external/edgar"
	"github.com/jwhan/fintab/pkg/logger"
)

// TickerIndexJob refreshes the cached ticker to CIK index. The SEC
// publishes updates after market close; a daily refresh keeps newly
// listed tickers resolvable without waiting out the cache TTL.
type TickerIndexJob struct {
	client *edgar.Client
	logger *logger.Logger
}

// NewTickerIndexJob creates a new ticker index refresh job
func NewTickerIndexJob(client *edgar.Client, log *logger.Logger) *TickerIndexJob {
	return &TickerIndexJob{
		client: client,
		logger: log,
	}
}

// Name returns the job name
func (j *TickerIndexJob) Name() string {
	return "ticker_index_refresh"
}

// Schedule returns the cron schedule (daily at 6 AM UTC, after EDGAR
// nightly processing)
func (j *TickerIndexJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run refetches and caches the ticker index
func (j *TickerIndexJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled ticker index refresh")

	index, err := j.client.RefreshTickerIndex(ctx)
	if err != nil {
		return fmt.Errorf("refresh ticker index: %w", err)
	}

	j.logger.WithField("companies", len(index)).Info("Ticker index refreshed")
	return nil
}
