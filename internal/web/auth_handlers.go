package web

import (
	"net/http"
)

type registerRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates an account and logs it in
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Nickname == "" || req.Password == "" {
		http.Error(w, "Email, nickname and password are required", http.StatusBadRequest)
		return
	}

	user, err := s.auth.Register(w, req.Email, req.Nickname, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// handleLogin verifies credentials and starts a session
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.auth.Login(w, req.Email, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// handleLogout ends the session. Always succeeds from the client's
// point of view, even when the server-side delete fails.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(w, r)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Success"})
}

// handleCSRFToken issues a fresh single-use token for the session.
// Issuing replaces any earlier unconsumed token.
func (s *Server) handleCSRFToken(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	token, err := s.auth.IssueCSRFToken(session.SessionID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}
