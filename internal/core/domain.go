package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amounts go over the wire as JSON numbers, not strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type (
	// Task is a single to-do item owned by one user and pinned to one
	// calendar day. Tasks are created by the API or by day propagation,
	// never auto-deleted.
	Task struct {
		ID        string    `json:"id"`
		UserKey   string    `json:"userEmail"`
		Title     string    `json:"title"`
		Completed bool      `json:"completed"`
		Date      time.Time `json:"date"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// Expense is a single monetary entry for one user-day. Amount is
	// non-negative and rounded to 2 decimal places only when aggregated.
	Expense struct {
		ID          string          `json:"id"`
		UserKey     string          `json:"userEmail"`
		Amount      decimal.Decimal `json:"amount"`
		Date        time.Time       `json:"date"`
		Description string          `json:"description"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// DailyReport is the derived per-user-per-day aggregate. It is a
	// cached view over the task and expense records sharing the same
	// (UserKey, Date) pair and must always be re-derivable from them.
	// At most one report exists per (UserKey, Date).
	DailyReport struct {
		UserKey            string          `json:"userEmail"`
		Date               time.Time       `json:"date"`
		TasksCreated       int             `json:"tasksCreated"`
		TasksCompleted     int             `json:"tasksCompleted"`
		ProductivityRating float64         `json:"productivityRating"`
		DaySpend           decimal.Decimal `json:"daySpend"`
		CreatedAt          time.Time       `json:"createdAt"`
	}

	// User is an account record keyed by normalized email.
	User struct {
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrNotFound = errors.New("record not found")

	ErrEmptyUserKey   = errors.New("user email must not be empty")
	ErrEmptyTitle     = errors.New("task title must not be empty")
	ErrEmptyName      = errors.New("user name must not be empty")
	ErrNegativeAmount = errors.New("expense amount must not be negative")
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
	ErrZeroDate       = errors.New("date must not be zero")
)

// validationErrs lists every sentinel that maps to a client-side error.
var validationErrs = []error{
	ErrEmptyUserKey,
	ErrEmptyTitle,
	ErrEmptyName,
	ErrNegativeAmount,
	ErrInvalidMonth,
	ErrZeroDate,
}

// IsValidation reports whether err stems from malformed or missing input,
// as opposed to a missing record or a storage failure.
func IsValidation(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// NormalizeUserKey folds an email address into the canonical partition key
// used for all per-user data.
func NormalizeUserKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (t Task) Validate() error {
	if NormalizeUserKey(t.UserKey) == "" {
		return ErrEmptyUserKey
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (e Expense) Validate() error {
	if NormalizeUserKey(e.UserKey) == "" {
		return ErrEmptyUserKey
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if NormalizeUserKey(u.Email) == "" {
		return ErrEmptyUserKey
	}
	return nil
}
