package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAmountsMarshalAsJSONNumbers(t *testing.T) {
	e := Expense{
		ID:        "exp-1",
		UserKey:   "alice@example.com",
		Amount:    decimal.NewFromFloat(12.3),
		Date:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal expense: %v", err)
	}
	if !strings.Contains(string(body), `"amount":12.3`) {
		t.Errorf("expense body = %s, want unquoted amount 12.3", body)
	}

	rep := DailyReport{
		UserKey:  "alice@example.com",
		Date:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		DaySpend: decimal.RequireFromString("20.01"),
	}
	body, err = json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	if !strings.Contains(string(body), `"daySpend":20.01`) {
		t.Errorf("report body = %s, want unquoted daySpend 20.01", body)
	}
}

func TestAmountsUnmarshalFromNumbersAndStrings(t *testing.T) {
	for _, raw := range []string{
		`{"amount":12.3}`,
		`{"amount":"12.3"}`,
	} {
		var e Expense
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if !e.Amount.Equal(decimal.NewFromFloat(12.3)) {
			t.Errorf("unmarshal %s: amount = %s, want 12.3", raw, e.Amount)
		}
	}
}
