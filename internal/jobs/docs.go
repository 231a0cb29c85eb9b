// Package jobs provides scheduled background tasks for orderstats.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and wrapped in
// cron.SkipIfStillRunning, so a slow run is never overlapped by the next tick.
//
// # Available Jobs
//
// 1. ImportOrdersJob - scans the landing area and imports each file (default "@every 1m")
// 2. RegionRankingReportJob - logs the top regions by average spending (default "@hourly")
//
// # Usage
//
//	jobManager := jobs.NewJobManager(store, importHandler, spendingHandler, jobs.Schedules{}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A file that fails to import is logged and stays in the landing area for the next run
// - A file that vanished between listing and import is logged at warn level
// - Failed job starts will stop any already running jobs
package jobs
