package cmd

import (
	"log/slog"

	httpadapter "orderstats/internal/adapters/in/http"
	"orderstats/internal/adapters/out/csvfile"
	"orderstats/internal/adapters/out/postgres"
	"orderstats/internal/core/application/usecases/commands"
	"orderstats/internal/core/application/usecases/queries"
	"orderstats/internal/core/domain/services"
	"orderstats/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	fileStore  *csvfile.Store
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	store, err := csvfile.NewStore(config.LandingDir, config.StagingDir)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		fileStore:  store,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateRegionAverageRanker() *services.RegionAverageRanker {
	return services.NewRegionAverageRanker(services.WithWorkers(c.config.RankWorkers))
}

func (c *CompositionRoot) CreateImportOrdersCommandHandler() *commands.ImportOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewImportOrdersCommandHandler(c.fileStore, services.NewOrderCleaner(), f, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetRegionAverageSpendingQueryHandler() queries.GetRegionAverageSpendingQueryHandler {
	return queries.NewGetRegionAverageSpendingQueryHandler(c.gormDB, c.CreateRegionAverageRanker())
}

func (c *CompositionRoot) CreateRankOrdersQueryHandler() queries.RankOrdersQueryHandler {
	return queries.NewRankOrdersQueryHandler(c.CreateRegionAverageRanker())
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateImportOrdersCommandHandler(),
		c.CreateGetRegionAverageSpendingQueryHandler(),
		c.CreateRankOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.fileStore,
		c.CreateImportOrdersCommandHandler(),
		c.CreateGetRegionAverageSpendingQueryHandler(),
		jobs.Schedules{
			Import: c.config.ImportSchedule,
			Report: c.config.ReportSchedule,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
