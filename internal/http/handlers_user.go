package http

import "net/http"

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	user, err := s.users.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}
