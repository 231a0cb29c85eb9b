package jobs

import (
	"context"
	"errors"
	"log/slog"

	"orderstats/internal/core/application/usecases/commands"
	"orderstats/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// DefaultImportSchedule scans the landing directory once a minute.
const DefaultImportSchedule = "@every 1m"

type (
	// LandingLister lists landing files waiting to be imported.
	LandingLister interface {
		List(ctx context.Context) ([]string, error)
	}

	// ImportOrdersHandler imports one landing file.
	ImportOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.ImportOrdersCommand) (commands.ImportOrdersResult, error)
	}
)

// ImportOrdersJob imports every landing file on a cron schedule.
// A run that is still busy when the next tick fires makes that tick a no-op.
type ImportOrdersJob struct {
	lister   LandingLister
	handler  ImportOrdersHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewImportOrdersJob creates the job. An empty schedule means DefaultImportSchedule.
func NewImportOrdersJob(
	lister LandingLister,
	handler ImportOrdersHandler,
	schedule string,
	logger *slog.Logger,
) *ImportOrdersJob {
	if schedule == "" {
		schedule = DefaultImportSchedule
	}

	return &ImportOrdersJob{
		lister:   lister,
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "import_orders_job"),
	}
}

// Start schedules the job. Returns an error when the schedule cannot be parsed.
func (j *ImportOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Import orders job started", "schedule", j.schedule)
	return nil
}

// Stop unschedules the job and waits for a running import to finish.
func (j *ImportOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Import orders job stopped")
}

// RunOnce imports every file currently in the landing area, one at a time, and
// returns how many succeeded. A failing file is logged and left in place; the
// remaining files are still imported. Only a failure to list the landing area is
// returned as an error.
func (j *ImportOrdersJob) RunOnce(ctx context.Context) (int, error) {
	files, err := j.lister.List(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Import orders job failed to list landing files", "error", err)
		return 0, err
	}

	imported := 0
	for _, file := range files {
		if ctx.Err() != nil {
			return imported, ctx.Err()
		}

		cmd, cmdErr := commands.NewImportOrdersCommand(uuid.New(), file)
		if cmdErr != nil {
			j.logger.WarnContext(ctx, "Skipping landing file", "file", file, "error", cmdErr)
			continue
		}

		if _, err = j.handler.Handle(ctx, cmd); err != nil {
			// Another instance may have imported the file since it was listed.
			if errors.Is(err, errs.ErrObjectNotFound) {
				j.logger.WarnContext(ctx, "Landing file disappeared", "file", file)
				continue
			}
			j.logger.ErrorContext(ctx, "Import orders job failed", "file", file, "import_id", cmd.ImportID().String(), "error", err)
			continue
		}
		imported++
	}

	return imported, nil
}
