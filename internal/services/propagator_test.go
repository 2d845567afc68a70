package services

import (
	"context"
	"testing"
	"time"

	"daytrack/internal/core"
)

func titles(tasks []core.Task) map[string]bool {
	out := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		out[t.Title] = true
	}
	return out
}

func TestEnsureDayCarriesForwardAcrossSkippedDays(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d1 := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	d3 := d1.AddDate(0, 0, 2)

	milk := env.mustCreateTask(t, "alice@example.com", "Buy milk", d1)
	env.mustComplete(t, milk.ID)
	env.mustCreateTask(t, "alice@example.com", "Call dentist", d1)

	// Two days later with nothing in between: the last active day's full
	// list carries forward as fresh incomplete tasks.
	got, err := env.prop.EnsureDay(ctx, "alice@example.com", d3)
	if err != nil {
		t.Fatalf("EnsureDay: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	names := titles(got)
	if !names["Buy milk"] || !names["Call dentist"] {
		t.Errorf("titles = %v, want Buy milk and Call dentist", names)
	}
	for _, task := range got {
		if task.Completed {
			t.Errorf("clone %q should be incomplete", task.Title)
		}
		if !task.Date.Equal(d3) {
			t.Errorf("clone %q dated %v, want %v", task.Title, task.Date, d3)
		}
	}

	// The materialized day is reflected in its report.
	rep := env.storedReport(t, "alice@example.com", d3)
	if rep.TasksCreated != 2 || rep.TasksCompleted != 0 {
		t.Errorf("report = %d/%d, want 2/0", rep.TasksCreated, rep.TasksCompleted)
	}
	if rep.ProductivityRating != 0 {
		t.Errorf("rating = %v, want 0", rep.ProductivityRating)
	}

	// The source day is untouched.
	d1Tasks, _ := env.store.TasksInRange(ctx, "alice@example.com", core.DayWindow(d1, time.UTC))
	if len(d1Tasks) != 2 {
		t.Errorf("source day now has %d tasks, want 2", len(d1Tasks))
	}
}

func TestEnsureDayIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	d1 := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	env.mustCreateTask(t, "alice@example.com", "Buy milk", d1)

	first, err := env.prop.EnsureDay(ctx, "alice@example.com", d2)
	if err != nil {
		t.Fatalf("first EnsureDay: %v", err)
	}
	second, err := env.prop.EnsureDay(ctx, "alice@example.com", d2)
	if err != nil {
		t.Fatalf("second EnsureDay: %v", err)
	}

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("lens = %d, %d, want 1, 1", len(first), len(second))
	}
	if first[0].ID != second[0].ID {
		t.Error("second call must not clone again")
	}
}

func TestEnsureDayReturnsExistingTasksUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	created := env.mustCreateTask(t, "alice@example.com", "already here", day)
	done := env.mustComplete(t, created.ID)

	got, err := env.prop.EnsureDay(ctx, "alice@example.com", day)
	if err != nil {
		t.Fatalf("EnsureDay: %v", err)
	}
	if len(got) != 1 || got[0].ID != done.ID || !got[0].Completed {
		t.Errorf("got = %+v, want the existing completed task as-is", got)
	}
}

func TestEnsureDayNothingToCarryForward(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.prop.EnsureDay(context.Background(), "nobody@example.com",
		time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("EnsureDay: %v", err)
	}
	if got == nil {
		t.Fatal("want empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if n := env.store.ReportCount("nobody@example.com"); n != 0 {
		t.Errorf("no report should be written, got %d rows", n)
	}
}

func TestEnsureDayUsesMostRecentPriorDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	old := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	target := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	env.mustCreateTask(t, "alice@example.com", "stale plan", old)
	env.mustCreateTask(t, "alice@example.com", "fresh plan A", recent)
	env.mustCreateTask(t, "alice@example.com", "fresh plan B", recent)

	got, err := env.prop.EnsureDay(ctx, "alice@example.com", target)
	if err != nil {
		t.Fatalf("EnsureDay: %v", err)
	}
	names := titles(got)
	if len(got) != 2 || !names["fresh plan A"] || !names["fresh plan B"] {
		t.Errorf("titles = %v, want only the most recent prior day's list", names)
	}
	if names["stale plan"] {
		t.Error("older day must not contribute to the template set")
	}
}

func TestEnsureDayNormalizesEmail(t *testing.T) {
	env := newTestEnv(t)
	d1 := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	env.mustCreateTask(t, "alice@example.com", "Buy milk", d1)

	got, err := env.prop.EnsureDay(context.Background(), "  Alice@Example.COM ", d2)
	if err != nil {
		t.Fatalf("EnsureDay: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1 (email should be case-folded)", len(got))
	}
}
