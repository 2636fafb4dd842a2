package web

import (
	"net/http"

	"github.com/example/quizkit/internal/apperr"
)

// handleFavoriteKit toggles the favored state of another user's kit.
// Favoring one's own kit is a conflict.
func (s *Server) handleFavoriteKit(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	var req struct {
		KitID string `json:"kitId"`
	}
	if err := decodeJSON(r, &req); err != nil || req.KitID == "" {
		http.Error(w, "kitId is required", http.StatusBadRequest)
		return
	}

	if session.OwnsKit(req.KitID) {
		s.respondError(w, apperr.New(apperr.Conflict, "cannot favorite your own kit"))
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

	favored, err := s.favorites.ToggleKit(req.KitID, session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"favored": favored})
}

// handleFavoriteNote toggles the favored state of another user's note
func (s *Server) handleFavoriteNote(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	var req struct {
		NoteID string `json:"noteId"`
	}
	if err := decodeJSON(r, &req); err != nil || req.NoteID == "" {
		http.Error(w, "noteId is required", http.StatusBadRequest)
		return
	}

	if session.OwnsNote(req.NoteID) {
		s.respondError(w, apperr.New(apperr.Conflict, "cannot favorite your own note"))
		return
	}

	note, err := s.notes.GetByID(req.NoteID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if note == nil {
		s.respondError(w, apperr.New(apperr.NotFound, "note not found"))
		return
	}

	favored, err := s.favorites.ToggleNote(req.NoteID, session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"favored": favored})
}
