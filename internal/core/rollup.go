package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputeDailyReport derives the aggregate for one user-day from the full
// task and expense sets of that day. It is pure: empty inputs are valid
// and yield a zeroed report rather than an error.
//
// Rounding is half-up to 2 decimal places and happens once, at the
// aggregation point, so per-record rounding error cannot compound.
func ComputeDailyReport(userKey string, dayStart time.Time, tasks []Task, expenses []Expense) DailyReport {
	created := len(tasks)
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	// Zero tasks yields rating 0, never a division by zero.
	rating := 0.0
	if created > 0 {
		r := decimal.NewFromInt(int64(completed) * 5).
			DivRound(decimal.NewFromInt(int64(created)), 2)
		rating, _ = r.Float64()
	}

	spend := decimal.Zero
	for _, e := range expenses {
		spend = spend.Add(e.Amount)
	}

	return DailyReport{
		UserKey:            userKey,
		Date:               dayStart,
		TasksCreated:       created,
		TasksCompleted:     completed,
		ProductivityRating: rating,
		DaySpend:           spend.Round(2),
	}
}
