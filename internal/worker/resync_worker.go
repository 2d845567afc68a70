package worker

import (
	"context"
	"fmt"
	"log/slog"

	"daytrack/internal/amqp"
	applog "daytrack/internal/log"
	"daytrack/internal/services"
)

// SyncConsumer is the queue side the worker drains. Satisfied by
// *amqp.Client.
type SyncConsumer interface {
	ConsumeReportSync(ctx context.Context, handler func(*amqp.ReportSyncMessage) error) error
}

// ResyncWorker repairs daily reports whose inline sync failed. Each
// queued message names a user-day; handling it recomputes that day's
// report from the current record sets. Replays are harmless because the
// synchronizer always rewrites the whole row.
type ResyncWorker struct {
	rollup   *services.RollupService
	consumer SyncConsumer
}

func NewResyncWorker(rollup *services.RollupService, consumer SyncConsumer) *ResyncWorker {
	return &ResyncWorker{
		rollup:   rollup,
		consumer: consumer,
	}
}

// HandleSyncMessage recomputes one user-day report.
func (w *ResyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ReportSyncMessage) error {
	slog.InfoContext(ctx, "Processing report resync",
		applog.FieldOperation, applog.OpSync,
		applog.FieldUserEmail, msg.UserKey,
		applog.FieldDate, msg.Date.Format("2006-01-02"))

	rep, err := w.rollup.SyncDay(ctx, msg.UserKey, msg.Date)
	if err != nil {
		return fmt.Errorf("resync report: %w", err)
	}

	slog.InfoContext(ctx, "Report repaired",
		"user", rep.UserKey,
		"date", rep.Date.Format("2006-01-02"),
		"tasks_created", rep.TasksCreated,
		"tasks_completed", rep.TasksCompleted)

	return nil
}

// Run drains the resync queue until ctx is cancelled. A handler error
// leaves the message on the queue for redelivery.
func (w *ResyncWorker) Run(ctx context.Context) error {
	return w.consumer.ConsumeReportSync(ctx, func(msg *amqp.ReportSyncMessage) error {
		return w.HandleSyncMessage(ctx, msg)
	})
}
