package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for day parameters and payload dates.
const dateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

type createTaskRequest struct {
	Email string `json:"email" validate:"required,email"`
	Title string `json:"title" validate:"required"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

type createExpenseRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string          `json:"description"`
}

type updateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

type registerUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// decodeAndValidate decodes the JSON body into dst and runs its
// validator tags. Callers still apply domain validation downstream.
func decodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// parseOptionalDate turns an optional YYYY-MM-DD payload field into a
// time in loc. Zero means "today" to the services.
func parseOptionalDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, loc)
}

func (s *Server) dateParam(r *http.Request) (time.Time, error) {
	raw := chi.URLParam(r, "date")
	d, err := time.ParseInLocation(dateLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return d, nil
}

func emailParam(r *http.Request) string {
	return chi.URLParam(r, "email")
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: want a number", name, raw)
	}
	return n, nil
}
