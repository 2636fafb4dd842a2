package web

import (
	"net/http"

	"github.com/example/quizkit/internal/apperr"
)

type progressRequest struct {
	KitID  string   `json:"kitId"`
	Learnt []string `json:"learnt"`
}

// handleGetProgress returns the caller's progress for a kit, or null
// when no row exists
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	kitID := r.URL.Query().Get("kitId")
	if kitID == "" {
		http.Error(w, "kitId is required", http.StatusBadRequest)
		return
	}

	progress, err := s.progress.Get(kitID, session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// handleUpsertProgress stores the full learnt set for a kit. Create
// and update collapse into one atomic upsert, so two devices ending a
// session at the same time can't lose each other's row.
func (s *Server) handleUpsertProgress(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.KitID == "" {
		http.Error(w, "kitId is required", http.StatusBadRequest)
		return
	}

	kit, err := s.kits.GetByID(req.KitID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if kit == nil {
		s.respondError(w, apperr.New(apperr.NotFound, "kit not found"))
		return
	}

	if err := s.progress.Upsert(req.KitID, session.UserID, req.Learnt); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// handleResetProgress deletes the caller's progress row for a kit,
// restoring the full learn stack on next load
func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	kitID := r.URL.Query().Get("kitId")
	if kitID == "" {
		http.Error(w, "kitId is required", http.StatusBadRequest)
		return
	}

	if err := s.progress.Delete(kitID, session.UserID); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "success"})
}
