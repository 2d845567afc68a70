package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"daytrack/internal/core"
	"daytrack/internal/store"
)

// ReportSyncPublisher enqueues an asynchronous resync request for one
// user-day, used to repair a stale report after a failed inline sync.
type ReportSyncPublisher interface {
	PublishReportSync(ctx context.Context, userKey string, date time.Time) error
}

// RollupService keeps daily reports consistent with the underlying task
// and expense records. It always recomputes the aggregate wholesale from
// the current full record sets of the day rather than patching counters,
// so out-of-order and concurrent mutations cannot drift the view.
type RollupService struct {
	store     store.RecordStore
	publisher ReportSyncPublisher // optional; nil disables async repair
	loc       *time.Location
}

func NewRollupService(st store.RecordStore, publisher ReportSyncPublisher, loc *time.Location) *RollupService {
	return &RollupService{
		store:     st,
		publisher: publisher,
		loc:       loc,
	}
}

// SyncDay recomputes the report for the day containing date and persists
// it as an atomic upsert keyed by (userKey, day start). Two concurrent
// syncs converge: each derives its payload fresh from storage and the
// store serializes the write on the unique key.
//
// On failure the triggering mutation is already committed; SyncDay
// enqueues a best-effort resync request and returns the error, leaving
// the report stale but repairable.
func (s *RollupService) SyncDay(ctx context.Context, userKey string, date time.Time) (core.DailyReport, error) {
	win := core.DayWindow(date, s.loc)

	tasks, err := s.store.TasksInRange(ctx, userKey, win)
	if err != nil {
		return core.DailyReport{}, s.fail(ctx, userKey, win.Start, fmt.Errorf("load tasks: %w", err))
	}

	expenses, err := s.store.ExpensesInRange(ctx, userKey, win)
	if err != nil {
		return core.DailyReport{}, s.fail(ctx, userKey, win.Start, fmt.Errorf("load expenses: %w", err))
	}

	report := core.ComputeDailyReport(userKey, win.Start, tasks, expenses)

	stored, err := s.store.UpsertDailyReport(ctx, report)
	if err != nil {
		return core.DailyReport{}, s.fail(ctx, userKey, win.Start, fmt.Errorf("upsert report: %w", err))
	}

	slog.InfoContext(ctx, "Daily report synced",
		"user", userKey,
		"date", win.Start.Format("2006-01-02"),
		"tasks_created", stored.TasksCreated,
		"tasks_completed", stored.TasksCompleted,
		"day_spend", stored.DaySpend.String())

	return stored, nil
}

func (s *RollupService) fail(ctx context.Context, userKey string, dayStart time.Time, err error) error {
	if s.publisher != nil {
		if perr := s.publisher.PublishReportSync(ctx, userKey, dayStart); perr != nil {
			slog.WarnContext(ctx, "Failed to enqueue report resync",
				"user", userKey,
				"date", dayStart.Format("2006-01-02"),
				"error", perr)
		}
	}
	return err
}
