package web

import (
	"net/http"
	"strconv"

	"github.com/example/quizkit/internal/apperr"
)

type editUserRequest struct {
	Description string `json:"description"`
	AvatarSeed  string `json:"avatarSeed"`
}

// handleEditUser updates the caller's profile
func (s *Server) handleEditUser(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	var req editUserRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.users.UpdateProfile(session.UserID, req.Description, req.AvatarSeed); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"description": req.Description,
		"avatarSeed":  req.AvatarSeed,
	})
}

// handleSearchUsers searches users by nickname, returning only the
// public projection
func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	nickname := r.URL.Query().Get("nickname")
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

	users, err := s.users.Search(nickname, searchPageSize, skip)
	if err != nil {
		s.respondError(w, err)
		return
	}

	results := make([]map[string]string, 0, len(users))
	for _, u := range users {
		results = append(results, map[string]string{
			"nickname":   u.Nickname,
			"avatarSeed": u.AvatarSeed,
		})
	}
	respondJSON(w, http.StatusOK, results)
}

// handleDashboard loads everything the dashboard view renders: the
// caller's kits and notes plus their favorites, all newest first
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	kits, err := s.kits.GetByUserNewest(session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	notes, err := s.notes.GetByUserNewest(session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	favoriteKits, err := s.favorites.ListKitsByUser(session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	favoriteNotes, err := s.favorites.ListNotesByUser(session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kits":          kits,
		"notes":         notes,
		"favoriteKits":  favoriteKits,
		"favoriteNotes": favoriteNotes,
	})
}

// handleSettings loads the caller's profile for the settings view
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	user, err := s.users.GetByID(session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if user == nil {
		s.respondError(w, apperr.New(apperr.NotFound, "user not found"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"nickname":    user.Nickname,
		"description": user.Description,
		"avatarSeed":  user.AvatarSeed,
	})
}
