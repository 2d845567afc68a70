package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"daytrack/internal/core"
	"daytrack/internal/store"
)

// TaskService orchestrates task mutations. Every create, update and
// delete re-rolls the daily report of the affected record's own day —
// an edit to a back-dated task re-rolls that day, not today.
type TaskService struct {
	store  store.RecordStore
	rollup *RollupService
	loc    *time.Location
	now    func() time.Time
}

func NewTaskService(st store.RecordStore, rollup *RollupService, loc *time.Location, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		store:  st,
		rollup: rollup,
		loc:    loc,
		now:    now,
	}
}

// Create stores a new task dated to the start of the day containing
// date, defaulting to today when date is zero.
func (s *TaskService) Create(ctx context.Context, email, title string, date time.Time) (core.Task, error) {
	if date.IsZero() {
		date = s.now()
	}

	t := core.Task{
		ID:        uuid.NewString(),
		UserKey:   core.NormalizeUserKey(email),
		Title:     strings.TrimSpace(title),
		Date:      core.DayWindow(date, s.loc).Start,
		CreatedAt: s.now(),
	}
	if err := t.Validate(); err != nil {
		return core.Task{}, err
	}

	if err := s.store.CreateTask(ctx, t); err != nil {
		return core.Task{}, fmt.Errorf("create task: %w", err)
	}

	// The task is committed; a sync failure surfaces but leaves the
	// record in place with a stale, repairable report.
	if _, err := s.rollup.SyncDay(ctx, t.UserKey, t.Date); err != nil {
		return core.Task{}, fmt.Errorf("sync daily report: %w", err)
	}
	return t, nil
}

// SetCompleted updates the completion flag. A nil completed leaves the
// flag untouched, matching partial-update semantics.
func (s *TaskService) SetCompleted(ctx context.Context, id string, completed *bool) (core.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return core.Task{}, err
	}

	if completed != nil {
		t.Completed = *completed
	}
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return core.Task{}, fmt.Errorf("update task: %w", err)
	}

	if _, err := s.rollup.SyncDay(ctx, t.UserKey, t.Date); err != nil {
		return core.Task{}, fmt.Errorf("sync daily report: %w", err)
	}
	return t, nil
}

// Delete removes the task and re-rolls its day.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if _, err := s.rollup.SyncDay(ctx, t.UserKey, t.Date); err != nil {
		return fmt.Errorf("sync daily report: %w", err)
	}
	return nil
}
