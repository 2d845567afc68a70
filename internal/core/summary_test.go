package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func report(day int, spend string, created, completed int, rating float64) DailyReport {
	return DailyReport{
		UserKey:            "alice@example.com",
		Date:               time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
		TasksCreated:       created,
		TasksCompleted:     completed,
		ProductivityRating: rating,
		DaySpend:           decimal.RequireFromString(spend),
	}
}

func TestSummarizeMonth(t *testing.T) {
	tests := []struct {
		name        string
		reports     []DailyReport
		wantTotal   string
		wantAvg     string
		wantCreated int
		wantDone    int
		wantRating  float64
		wantDays    int
	}{
		{
			name:      "no reports yields zero summary not error",
			reports:   nil,
			wantTotal: "0",
			wantAvg:   "0",
		},
		{
			name: "single day",
			reports: []DailyReport{
				report(1, "12.50", 3, 2, 3.33),
			},
			wantTotal:   "12.50",
			wantAvg:     "12.50",
			wantCreated: 3,
			wantDone:    2,
			wantRating:  3.33,
			wantDays:    1,
		},
		{
			name: "averages divide by days with data only",
			reports: []DailyReport{
				report(1, "10.00", 2, 2, 5),
				report(15, "20.00", 4, 1, 1.25),
			},
			wantTotal:   "30.00",
			wantAvg:     "15.00",
			wantCreated: 6,
			wantDone:    3,
			wantRating:  3.13,
			wantDays:    2,
		},
		{
			name: "average spend rounds half up",
			reports: []DailyReport{
				report(1, "0.01", 0, 0, 0),
				report(2, "0.02", 0, 0, 0),
			},
			wantTotal:  "0.03",
			wantAvg:    "0.02",
			wantRating: 0,
			wantDays:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeMonth("alice@example.com", 2024, 5, tt.reports)

			if want := decimal.RequireFromString(tt.wantTotal); !got.TotalSpend.Equal(want) {
				t.Errorf("TotalSpend = %s, want %s", got.TotalSpend, want)
			}
			if want := decimal.RequireFromString(tt.wantAvg); !got.AverageSpend.Equal(want) {
				t.Errorf("AverageSpend = %s, want %s", got.AverageSpend, want)
			}
			if got.TotalTasksCreated != tt.wantCreated {
				t.Errorf("TotalTasksCreated = %d, want %d", got.TotalTasksCreated, tt.wantCreated)
			}
			if got.TotalCompletedTasks != tt.wantDone {
				t.Errorf("TotalCompletedTasks = %d, want %d", got.TotalCompletedTasks, tt.wantDone)
			}
			if got.AverageProductivity != tt.wantRating {
				t.Errorf("AverageProductivity = %v, want %v", got.AverageProductivity, tt.wantRating)
			}
			if got.DaysWithData != tt.wantDays {
				t.Errorf("DaysWithData = %d, want %d", got.DaysWithData, tt.wantDays)
			}
			if got.Reports == nil {
				t.Error("Reports should never be nil")
			}
			if got.Year != 2024 || got.Month != 5 {
				t.Errorf("Year/Month = %d/%d, want 2024/5", got.Year, got.Month)
			}
		})
	}
}

func TestNormalizeUserKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@example.com  ", "bob@example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeUserKey(tt.in); got != tt.want {
			t.Errorf("NormalizeUserKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
