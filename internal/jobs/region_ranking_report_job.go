package jobs

import (
	"context"
	"log/slog"

	"orderstats/internal/core/application/usecases/queries"
	"orderstats/internal/core/domain/model/ranking"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultReportSchedule logs the ranking once an hour.
	DefaultReportSchedule = "@hourly"

	reportTopRegions = 5
)

// RegionAverageSpendingHandler ranks the stored orders.
type RegionAverageSpendingHandler interface {
	Handle(ctx context.Context, query queries.GetRegionAverageSpendingQuery) ([]ranking.RegionAverage, error)
}

// RegionRankingReportJob periodically logs the top regions by average spending.
type RegionRankingReportJob struct {
	handler  RegionAverageSpendingHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRegionRankingReportJob creates the job. An empty schedule means DefaultReportSchedule.
func NewRegionRankingReportJob(handler RegionAverageSpendingHandler, schedule string, logger *slog.Logger) *RegionRankingReportJob {
	if schedule == "" {
		schedule = DefaultReportSchedule
	}

	return &RegionRankingReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "region_ranking_report_job"),
	}
}

func (j *RegionRankingReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Region ranking report job started", "schedule", j.schedule)
	return nil
}

func (j *RegionRankingReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Region ranking report job stopped")
}

// RunOnce logs one line per top region.
func (j *RegionRankingReportJob) RunOnce(ctx context.Context) error {
	query, err := queries.NewGetRegionAverageSpendingQuery(reportTopRegions)
	if err != nil {
		return err
	}

	regions, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Region ranking report failed", "error", err)
		return err
	}

	for i, r := range regions {
		average := "null"
		if r.AverageSpending.Valid {
			average = r.AverageSpending.Decimal.StringFixed(2)
		}
		j.logger.InfoContext(ctx, "Region average spending",
			"rank", i+1,
			"region", r.Region,
			"average_spending", average,
			"orders", r.OrderCount,
		)
	}

	return nil
}
