package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/example/quizkit/internal/apperr"
	"github.com/example/quizkit/pkg/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type noteRequest struct {
	Name       string `json:"name"`
	Data       string `json:"data"`
	Visibility string `json:"visibility"`
}

// validVisibility normalizes the visibility field, defaulting to public
func validVisibility(v string) (string, bool) {
	switch v {
	case "":
		return models.VisibilityPublic, true
	case models.VisibilityPublic, models.VisibilityPrivate:
		return v, true
	default:
		return "", false
	}
}

// handleAddNote creates a note, enforcing the per-user quota
func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	visibility, ok := validVisibility(req.Visibility)
	if req.Name == "" || !ok {
		http.Error(w, "Invalid note", http.StatusBadRequest)
		return
	}

	if len(session.NoteIDs) >= MaxNotesPerUser {
		s.respondError(w, apperr.New(apperr.Conflict, "note limit reached"))
		return
	}

	note := &models.Note{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Data:       req.Data,
		Visibility: visibility,
		CreatedBy:  session.UserID,
	}
	if err := s.notes.Create(note); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// handleGetNote returns a note. Private notes are only visible to
// their owner; to anyone else they don't exist.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.notes.GetByID(mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	if note == nil {
		s.respondError(w, apperr.New(apperr.NotFound, "note not found"))
		return
	}

	if note.Visibility == models.VisibilityPrivate {
		session, err := s.auth.Authenticate(r)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if session == nil || session.UserID != note.CreatedBy {
			s.respondError(w, apperr.New(apperr.NotFound, "note not found"))
			return
		}
	}
	respondJSON(w, http.StatusOK, note)
}

// handleEditNote replaces a note's name, data and visibility
func (s *Server) handleEditNote(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	noteID := mux.Vars(r)["id"]

	if !session.OwnsNote(noteID) {
		s.respondError(w, apperr.New(apperr.Conflict, "not the note owner"))
		return
	}

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	visibility, ok := validVisibility(req.Visibility)
	if req.Name == "" || !ok {
		http.Error(w, "Invalid note", http.StatusBadRequest)
		return
	}

	note := &models.Note{
		ID:         noteID,
		Name:       req.Name,
		Data:       req.Data,
		Visibility: visibility,
	}
	if err := s.notes.Update(note); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// handleDeleteNote removes a note owned by the caller
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	noteID := mux.Vars(r)["id"]

	if !session.OwnsNote(noteID) {
		s.respondError(w, apperr.New(apperr.Conflict, "not the note owner"))
		return
	}

	if err := s.notes.Delete(noteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.respondError(w, apperr.New(apperr.NotFound, "note not found"))
			return
		}
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// handleSearchNotes searches public notes by name, paged by skip
func (s *Server) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

	notes, err := s.notes.SearchPublic(text, searchPageSize, skip)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}
