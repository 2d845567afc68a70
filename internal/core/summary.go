package core

import "github.com/shopspring/decimal"

// MonthlySummary is a compact month-level view folded from the daily
// reports that actually exist for the month.
type MonthlySummary struct {
	UserKey             string          `json:"userEmail"`
	Year                int             `json:"year"`
	Month               int             `json:"month"`
	TotalSpend          decimal.Decimal `json:"totalSpend"`
	AverageSpend        decimal.Decimal `json:"averageSpend"`
	TotalTasksCreated   int             `json:"totalTasksCreated"`
	TotalCompletedTasks int             `json:"totalCompletedTasks"`
	AverageProductivity float64         `json:"averageProductivity"`
	DaysWithData        int             `json:"daysWithData"`
	Reports             []DailyReport   `json:"reports"`
}

// SummarizeMonth folds daily reports into month totals and means. Averages
// divide by the number of reports present: a day with no materialized
// report is absent, it does not contribute a zero. Zero reports yield an
// all-zero summary, not an error.
func SummarizeMonth(userKey string, year, month int, reports []DailyReport) MonthlySummary {
	s := MonthlySummary{
		UserKey:      userKey,
		Year:         year,
		Month:        month,
		TotalSpend:   decimal.Zero,
		AverageSpend: decimal.Zero,
		DaysWithData: len(reports),
		Reports:      reports,
	}
	if s.Reports == nil {
		s.Reports = []DailyReport{}
	}

	totalSpend := decimal.Zero
	ratingSum := decimal.Zero
	for _, r := range reports {
		totalSpend = totalSpend.Add(r.DaySpend)
		ratingSum = ratingSum.Add(decimal.NewFromFloat(r.ProductivityRating))
		s.TotalTasksCreated += r.TasksCreated
		s.TotalCompletedTasks += r.TasksCompleted
	}

	s.TotalSpend = totalSpend.Round(2)
	if n := len(reports); n > 0 {
		days := decimal.NewFromInt(int64(n))
		s.AverageSpend = totalSpend.DivRound(days, 2)
		avg := ratingSum.DivRound(days, 2)
		s.AverageProductivity, _ = avg.Float64()
	}
	return s
}
