package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"daytrack/internal/core"
	"daytrack/internal/store/memory"
)

// fakeClock is a settable clock so tests can pin "now" and walk days
// forward deterministically.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	store    *memory.Store
	clock    *fakeClock
	rollup   *RollupService
	prop     *Propagator
	tasks    *TaskService
	expenses *ExpenseService
	reports  *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := memory.NewStore()
	clock := newFakeClock(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC))
	rollup := NewRollupService(st, nil, time.UTC)

	return &testEnv{
		store:    st,
		clock:    clock,
		rollup:   rollup,
		prop:     NewPropagator(st, rollup, time.UTC, clock.Now),
		tasks:    NewTaskService(st, rollup, time.UTC, clock.Now),
		expenses: NewExpenseService(st, rollup, time.UTC, clock.Now),
		reports:  NewReportService(st, time.UTC),
	}
}

func (env *testEnv) mustCreateTask(t *testing.T, email, title string, date time.Time) core.Task {
	t.Helper()
	task, err := env.tasks.Create(context.Background(), email, title, date)
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

func (env *testEnv) mustCreateExpense(t *testing.T, email, amount string, date time.Time) core.Expense {
	t.Helper()
	e, err := env.expenses.Create(context.Background(), email, decimal.RequireFromString(amount), date, "")
	if err != nil {
		t.Fatalf("create expense %s: %v", amount, err)
	}
	return e
}

func (env *testEnv) mustComplete(t *testing.T, id string) core.Task {
	t.Helper()
	done := true
	task, err := env.tasks.SetCompleted(context.Background(), id, &done)
	if err != nil {
		t.Fatalf("complete task %s: %v", id, err)
	}
	return task
}

func (env *testEnv) storedReport(t *testing.T, email string, date time.Time) core.DailyReport {
	t.Helper()
	rep, err := env.store.GetDailyReport(context.Background(), core.NormalizeUserKey(email), core.DayWindow(date, time.UTC))
	if err != nil {
		t.Fatalf("load stored report: %v", err)
	}
	return rep
}
