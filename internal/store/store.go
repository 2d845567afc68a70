package store

import (
	"context"
	"fmt"
	"time"

	"daytrack/internal/core"
	"daytrack/internal/store/memory"
)

// RecordStore is the persistence surface the rollup and propagation engine
// relies on. Range queries return records ordered by descending creation
// time; lookups for absent records return core.ErrNotFound. The daily
// report upsert must be atomic with respect to the unique (userKey, date)
// key: concurrent upserts for the same key converge on a single row.
type RecordStore interface {
	CreateTask(ctx context.Context, t core.Task) error
	GetTask(ctx context.Context, id string) (core.Task, error)
	UpdateTask(ctx context.Context, t core.Task) error
	DeleteTask(ctx context.Context, id string) error
	TasksInRange(ctx context.Context, userKey string, r core.DateRange) ([]core.Task, error)
	InsertTasks(ctx context.Context, tasks []core.Task) error

	// LatestTaskBefore returns the single most recently dated task strictly
	// before the given instant, used to locate the last active day.
	LatestTaskBefore(ctx context.Context, userKey string, before time.Time) (core.Task, error)

	CreateExpense(ctx context.Context, e core.Expense) error
	GetExpense(ctx context.Context, id string) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	ExpensesInRange(ctx context.Context, userKey string, r core.DateRange) ([]core.Expense, error)

	UpsertDailyReport(ctx context.Context, rep core.DailyReport) (core.DailyReport, error)
	GetDailyReport(ctx context.Context, userKey string, r core.DateRange) (core.DailyReport, error)
	ReportsInRange(ctx context.Context, userKey string, r core.DateRange) ([]core.DailyReport, error)

	UpsertUser(ctx context.Context, u core.User) (core.User, error)

	Close() error
}

// Compile-time interface checks for both backends.
var (
	_ RecordStore = (*SQLiteRepository)(nil)
	_ RecordStore = (*memory.Store)(nil)
)

// Open selects a storage backend by name. "sqlite" is the durable default;
// "memory" keeps everything in-process and is meant for local runs and
// tests.
func Open(backend, dbPath string) (RecordStore, error) {
	switch backend {
	case "sqlite":
		return NewSQLiteRepository(dbPath)
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", backend)
	}
}
