package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleDayExpenses(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	expenses, err := s.expenses.ListDay(r.Context(), emailParam(r), date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	date, err := parseOptionalDate(req.Date, s.loc)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	expense, err := s.expenses.Create(r.Context(), req.Email, req.Amount, date, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	expense, err := s.expenses.Update(r.Context(), chi.URLParam(r, "id"), req.Amount, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
