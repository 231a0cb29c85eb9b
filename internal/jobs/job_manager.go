package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	importOrdersJob        *ImportOrdersJob
	regionRankingReportJob *RegionRankingReportJob
}

// Schedules holds the cron expressions of the managed jobs; empty values use the defaults.
type Schedules struct {
	Import string
	Report string
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	lister LandingLister,
	importHandler ImportOrdersHandler,
	spendingHandler RegionAverageSpendingHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		importOrdersJob:        NewImportOrdersJob(lister, importHandler, schedules.Import, logger),
		regionRankingReportJob: NewRegionRankingReportJob(spendingHandler, schedules.Report, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.importOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start import orders job: %w", err)
	}

	if err := jm.regionRankingReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.importOrdersJob.Stop()
		return fmt.Errorf("failed to start region ranking report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.regionRankingReportJob.Stop()
	jm.importOrdersJob.Stop()
}
