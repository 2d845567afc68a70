package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"daytrack/internal/core"
	"daytrack/internal/store"
)

// ExpenseService orchestrates expense mutations with the same
// sync-the-record's-own-day contract as TaskService.
type ExpenseService struct {
	store  store.RecordStore
	rollup *RollupService
	loc    *time.Location
	now    func() time.Time
}

func NewExpenseService(st store.RecordStore, rollup *RollupService, loc *time.Location, now func() time.Time) *ExpenseService {
	if now == nil {
		now = time.Now
	}
	return &ExpenseService{
		store:  st,
		rollup: rollup,
		loc:    loc,
		now:    now,
	}
}

// Create stores a new expense dated to the start of the day containing
// date, defaulting to today when date is zero. Amounts are kept exact;
// rounding happens only when the day is aggregated.
func (s *ExpenseService) Create(ctx context.Context, email string, amount decimal.Decimal, date time.Time, description string) (core.Expense, error) {
	if date.IsZero() {
		date = s.now()
	}

	e := core.Expense{
		ID:          uuid.NewString(),
		UserKey:     core.NormalizeUserKey(email),
		Amount:      amount,
		Date:        core.DayWindow(date, s.loc).Start,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	if _, err := s.rollup.SyncDay(ctx, e.UserKey, e.Date); err != nil {
		return core.Expense{}, fmt.Errorf("sync daily report: %w", err)
	}
	return e, nil
}

// Update applies a partial update: nil fields are left untouched.
func (s *ExpenseService) Update(ctx context.Context, id string, amount *decimal.Decimal, description *string) (core.Expense, error) {
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}

	if amount != nil {
		e.Amount = *amount
	}
	if description != nil {
		e.Description = strings.TrimSpace(*description)
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	if _, err := s.rollup.SyncDay(ctx, e.UserKey, e.Date); err != nil {
		return core.Expense{}, fmt.Errorf("sync daily report: %w", err)
	}
	return e, nil
}

// Delete removes the expense and re-rolls its day.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	if _, err := s.rollup.SyncDay(ctx, e.UserKey, e.Date); err != nil {
		return fmt.Errorf("sync daily report: %w", err)
	}
	return nil
}

// ListDay returns the day's expenses in descending creation order. Plain
// read, no propagation.
func (s *ExpenseService) ListDay(ctx context.Context, email string, date time.Time) ([]core.Expense, error) {
	userKey := core.NormalizeUserKey(email)
	if userKey == "" {
		return nil, core.ErrEmptyUserKey
	}

	expenses, err := s.store.ExpensesInRange(ctx, userKey, core.DayWindow(date, s.loc))
	if err != nil {
		return nil, fmt.Errorf("load day expenses: %w", err)
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	return expenses, nil
}
