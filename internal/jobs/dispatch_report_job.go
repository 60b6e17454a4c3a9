package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DispatchReportJob periodically logs how many orders sit in each status.
// The report makes a stuck dispatch queue visible in the logs without any
// external monitoring stack.
type DispatchReportJob struct {
	handler queries.GetOrderStatsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchReportJob creates a new job for dispatch queue reporting.
// Uses GetOrderStatsQueryHandler to read per-status order counts.
func NewDispatchReportJob(handler queries.GetOrderStatsQueryHandler, logger *slog.Logger) *DispatchReportJob {
	return &DispatchReportJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "dispatch_report_job"),
	}
}

// Start begins the dispatch report job to run every minute.
func (j *DispatchReportJob) Start() error {
	_, err := j.cron.AddFunc("@every 1m", func() {
		ctx := context.Background()

		stats, err := j.handler.Handle(ctx, queries.NewGetOrderStatsQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch report job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Dispatch queue report",
			"unassigned", stats.Unassigned(),
			"taken", stats.Taken())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch report job started (running every minute)")
	return nil
}

// Stop stops the dispatch report job.
func (j *DispatchReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch report job stopped")
}
