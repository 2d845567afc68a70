package http

import "net/http"

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	report, err := s.reports.Daily(r.Context(), emailParam(r), date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	month, err := intParam(r, "month")
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	summary, err := s.reports.Monthly(r.Context(), emailParam(r), year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
