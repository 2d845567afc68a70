package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"daytrack/internal/core"
)

func TestTaskCreateDefaultsToToday(t *testing.T) {
	env := newTestEnv(t)

	task := env.mustCreateTask(t, "alice@example.com", "no date given", time.Time{})

	wantDay := core.DayWindow(env.clock.Now(), time.UTC).Start
	if !task.Date.Equal(wantDay) {
		t.Errorf("Date = %v, want today's start %v", task.Date, wantDay)
	}
	if task.ID == "" {
		t.Error("ID should be assigned")
	}
	if task.Completed {
		t.Error("new tasks start incomplete")
	}
}

func TestTaskCreateSnapsDateToDayStart(t *testing.T) {
	env := newTestEnv(t)

	midAfternoon := time.Date(2024, 5, 3, 15, 42, 7, 0, time.UTC)
	task := env.mustCreateTask(t, "alice@example.com", "snapped", midAfternoon)

	want := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	if !task.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", task.Date, want)
	}
}

func TestTaskCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		title   string
		wantErr error
	}{
		{"empty title", "alice@example.com", "   ", core.ErrEmptyTitle},
		{"empty email", "", "fine title", core.ErrEmptyUserKey},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.tasks.Create(ctx, tc.email, tc.title, time.Time{})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
			if !core.IsValidation(err) {
				t.Errorf("err %v should be a validation error", err)
			}
		})
	}
}

func TestTaskSetCompletedPartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	task := env.mustCreateTask(t, "alice@example.com", "toggle me", day)

	// Nil flag leaves the task untouched.
	same, err := env.tasks.SetCompleted(ctx, task.ID, nil)
	if err != nil {
		t.Fatalf("SetCompleted(nil): %v", err)
	}
	if same.Completed {
		t.Error("nil flag must not change completion")
	}

	done := env.mustComplete(t, task.ID)
	if !done.Completed {
		t.Error("task should be completed")
	}
	rep := env.storedReport(t, "alice@example.com", day)
	if rep.TasksCompleted != 1 {
		t.Errorf("report TasksCompleted = %d, want 1", rep.TasksCompleted)
	}

	// Un-completing re-rolls the day back down.
	undone := false
	if _, err := env.tasks.SetCompleted(ctx, task.ID, &undone); err != nil {
		t.Fatalf("SetCompleted(false): %v", err)
	}
	rep = env.storedReport(t, "alice@example.com", day)
	if rep.TasksCompleted != 0 {
		t.Errorf("report TasksCompleted = %d, want 0 after undo", rep.TasksCompleted)
	}
}

func TestTaskDeleteRerollsDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	keep := env.mustCreateTask(t, "alice@example.com", "keep", day)
	drop := env.mustCreateTask(t, "alice@example.com", "drop", day)
	env.mustComplete(t, keep.ID)

	if err := env.tasks.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rep := env.storedReport(t, "alice@example.com", day)
	if rep.TasksCreated != 1 || rep.TasksCompleted != 1 {
		t.Errorf("report = %d/%d, want 1/1 after delete", rep.TasksCreated, rep.TasksCompleted)
	}
	if rep.ProductivityRating != 5 {
		t.Errorf("rating = %v, want 5", rep.ProductivityRating)
	}

	if _, err := env.store.GetTask(ctx, drop.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("deleted task lookup err = %v, want ErrNotFound", err)
	}
}

func TestTaskMutationsOnMissingID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	done := true
	if _, err := env.tasks.SetCompleted(ctx, "no-such-id", &done); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("SetCompleted err = %v, want ErrNotFound", err)
	}
	if err := env.tasks.Delete(ctx, "no-such-id"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Delete err = %v, want ErrNotFound", err)
	}
}
