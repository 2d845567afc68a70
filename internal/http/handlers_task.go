package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleDayTasks serves GET /api/tasks/{email}/{date}. Reading a day is
// what materializes it: empty days inherit the most recent prior day's
// task list before the response is built.
func (s *Server) handleDayTasks(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	tasks, err := s.prop.EnsureDay(r.Context(), emailParam(r), date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	date, err := parseOptionalDate(req.Date, s.loc)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	task, err := s.tasks.Create(r.Context(), req.Email, req.Title, date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	task, err := s.tasks.SetCompleted(r.Context(), chi.URLParam(r, "id"), req.Completed)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
