package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"daytrack/internal/core"
)

// SQLiteRepository is the durable RecordStore backend. Dates and creation
// times are stored as unix milliseconds; money amounts as exact decimal
// strings. The daily_reports table carries the composite primary key
// (user_email, date) that the report upsert relies on for atomicity.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, t core.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_email, title, completed, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserKey, t.Title, boolToInt(t.Completed), t.Date.UnixMilli(), t.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	slog.InfoContext(ctx, "Task saved",
		"id", t.ID,
		"user", t.UserKey,
		"title", t.Title,
		"date", t.Date.Format("2006-01-02"))
	return nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (core.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_email, title, completed, date, created_at
		 FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Task{}, fmt.Errorf("task %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, t core.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, completed = ? WHERE id = ?`,
		t.Title, boolToInt(t.Completed), t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return requireAffected(res, "task", t.ID)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res, "task", id)
}

func (r *SQLiteRepository) TasksInRange(ctx context.Context, userKey string, dr core.DateRange) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_email, title, completed, date, created_at
		 FROM tasks
		 WHERE user_email = ? AND date >= ? AND date <= ?
		 ORDER BY created_at DESC, rowid DESC`,
		userKey, dr.Start.UnixMilli(), dr.End.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []core.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteRepository) InsertTasks(ctx context.Context, tasks []core.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tasks: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tasks (id, user_email, title, completed, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert tasks: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.UserKey, t.Title, boolToInt(t.Completed), t.Date.UnixMilli(), t.CreatedAt.UnixMilli(),
		); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert tasks: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) LatestTaskBefore(ctx context.Context, userKey string, before time.Time) (core.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_email, title, completed, date, created_at
		 FROM tasks
		 WHERE user_email = ? AND date < ?
		 ORDER BY date DESC LIMIT 1`,
		userKey, before.UnixMilli(),
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Task{}, fmt.Errorf("no task before %s for %s: %w",
			before.Format("2006-01-02"), userKey, core.ErrNotFound)
	}
	if err != nil {
		return core.Task{}, fmt.Errorf("latest task before: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, user_email, amount, date, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserKey, e.Amount.String(), e.Date.UnixMilli(), e.Description, e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"user", e.UserKey,
		"amount", e.Amount.String(),
		"date", e.Date.Format("2006-01-02"))
	return nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_email, amount, date, description, created_at
		 FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET amount = ?, description = ? WHERE id = ?`,
		e.Amount.String(), e.Description, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireAffected(res, "expense", e.ID)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireAffected(res, "expense", id)
}

func (r *SQLiteRepository) ExpensesInRange(ctx context.Context, userKey string, dr core.DateRange) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_email, amount, date, description, created_at
		 FROM expenses
		 WHERE user_email = ? AND date >= ? AND date <= ?
		 ORDER BY created_at DESC, rowid DESC`,
		userKey, dr.Start.UnixMilli(), dr.End.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpsertDailyReport writes the derived fields for one (user, day) pair.
// The composite primary key makes the insert-or-overwrite atomic at the
// storage layer, so concurrent syncs cannot produce duplicate rows.
// created_at survives overwrites.
func (r *SQLiteRepository) UpsertDailyReport(ctx context.Context, rep core.DailyReport) (core.DailyReport, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO daily_reports
		   (user_email, date, tasks_created, tasks_completed, productivity_rating, day_spend, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_email, date) DO UPDATE SET
		   tasks_created       = excluded.tasks_created,
		   tasks_completed     = excluded.tasks_completed,
		   productivity_rating = excluded.productivity_rating,
		   day_spend           = excluded.day_spend
		 RETURNING user_email, date, tasks_created, tasks_completed, productivity_rating, day_spend, created_at`,
		rep.UserKey, rep.Date.UnixMilli(), rep.TasksCreated, rep.TasksCompleted,
		rep.ProductivityRating, rep.DaySpend.String(), time.Now().UnixMilli(),
	)
	stored, err := scanReport(row)
	if err != nil {
		return core.DailyReport{}, fmt.Errorf("upsert daily report: %w", err)
	}
	return stored, nil
}

func (r *SQLiteRepository) GetDailyReport(ctx context.Context, userKey string, dr core.DateRange) (core.DailyReport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_email, date, tasks_created, tasks_completed, productivity_rating, day_spend, created_at
		 FROM daily_reports
		 WHERE user_email = ? AND date >= ? AND date <= ?`,
		userKey, dr.Start.UnixMilli(), dr.End.UnixMilli(),
	)
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DailyReport{}, fmt.Errorf("report for %s: %w", userKey, core.ErrNotFound)
	}
	if err != nil {
		return core.DailyReport{}, fmt.Errorf("get daily report: %w", err)
	}
	return rep, nil
}

func (r *SQLiteRepository) ReportsInRange(ctx context.Context, userKey string, dr core.DateRange) ([]core.DailyReport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_email, date, tasks_created, tasks_completed, productivity_rating, day_spend, created_at
		 FROM daily_reports
		 WHERE user_email = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC`,
		userKey, dr.Start.UnixMilli(), dr.End.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []core.DailyReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *SQLiteRepository) UpsertUser(ctx context.Context, u core.User) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, name, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET name = excluded.name
		 RETURNING email, name, created_at`,
		u.Email, u.Name, time.Now().UnixMilli(),
	)
	var stored core.User
	var createdAt int64
	if err := row.Scan(&stored.Email, &stored.Name, &createdAt); err != nil {
		return core.User{}, fmt.Errorf("upsert user: %w", err)
	}
	stored.CreatedAt = time.UnixMilli(createdAt)
	return stored, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (core.Task, error) {
	var t core.Task
	var completed int
	var date, createdAt int64
	if err := row.Scan(&t.ID, &t.UserKey, &t.Title, &completed, &date, &createdAt); err != nil {
		return core.Task{}, err
	}
	t.Completed = completed != 0
	t.Date = time.UnixMilli(date)
	t.CreatedAt = time.UnixMilli(createdAt)
	return t, nil
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	var amount string
	var date, createdAt int64
	if err := row.Scan(&e.ID, &e.UserKey, &amount, &date, &e.Description, &createdAt); err != nil {
		return core.Expense{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	e.Amount = parsed
	e.Date = time.UnixMilli(date)
	e.CreatedAt = time.UnixMilli(createdAt)
	return e, nil
}

func scanReport(row rowScanner) (core.DailyReport, error) {
	var rep core.DailyReport
	var spend string
	var date, createdAt int64
	if err := row.Scan(&rep.UserKey, &date, &rep.TasksCreated, &rep.TasksCompleted,
		&rep.ProductivityRating, &spend, &createdAt); err != nil {
		return core.DailyReport{}, err
	}
	parsed, err := decimal.NewFromString(spend)
	if err != nil {
		return core.DailyReport{}, fmt.Errorf("parse day spend %q: %w", spend, err)
	}
	rep.DaySpend = parsed
	rep.Date = time.UnixMilli(date)
	rep.CreatedAt = time.UnixMilli(createdAt)
	return rep, nil
}

func requireAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, core.ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
