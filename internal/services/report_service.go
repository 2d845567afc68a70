package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"daytrack/internal/core"
	"daytrack/internal/store"
)

// ReportService serves the derived reporting views.
type ReportService struct {
	store store.RecordStore
	loc   *time.Location
}

func NewReportService(st store.RecordStore, loc *time.Location) *ReportService {
	return &ReportService{store: st, loc: loc}
}

// Daily returns the stored report for the day containing date,
// materializing and persisting it from current records when absent.
func (s *ReportService) Daily(ctx context.Context, email string, date time.Time) (core.DailyReport, error) {
	userKey := core.NormalizeUserKey(email)
	if userKey == "" {
		return core.DailyReport{}, core.ErrEmptyUserKey
	}

	win := core.DayWindow(date, s.loc)

	rep, err := s.store.GetDailyReport(ctx, userKey, win)
	if err == nil {
		return rep, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.DailyReport{}, fmt.Errorf("load daily report: %w", err)
	}

	tasks, err := s.store.TasksInRange(ctx, userKey, win)
	if err != nil {
		return core.DailyReport{}, fmt.Errorf("load tasks: %w", err)
	}
	expenses, err := s.store.ExpensesInRange(ctx, userKey, win)
	if err != nil {
		return core.DailyReport{}, fmt.Errorf("load expenses: %w", err)
	}

	stored, err := s.store.UpsertDailyReport(ctx, core.ComputeDailyReport(userKey, win.Start, tasks, expenses))
	if err != nil {
		return core.DailyReport{}, fmt.Errorf("materialize daily report: %w", err)
	}
	return stored, nil
}

// Monthly folds the month's existing daily reports into a summary. Days
// without a materialized report are simply absent; nothing is created
// on this path.
func (s *ReportService) Monthly(ctx context.Context, email string, year, month int) (core.MonthlySummary, error) {
	userKey := core.NormalizeUserKey(email)
	if userKey == "" {
		return core.MonthlySummary{}, core.ErrEmptyUserKey
	}

	win, err := core.MonthWindow(year, month, s.loc)
	if err != nil {
		return core.MonthlySummary{}, err
	}

	reports, err := s.store.ReportsInRange(ctx, userKey, win)
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("load monthly reports: %w", err)
	}

	return core.SummarizeMonth(userKey, year, month, reports), nil
}
