package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/example/quizkit/internal/apperr"
	"github.com/example/quizkit/internal/excel"
	"github.com/example/quizkit/internal/study"
	"github.com/example/quizkit/pkg/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type kitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Questions   []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"questions"`
}

// handleAddKit creates a kit with its questions, enforcing the per-user quota
func (s *Server) handleAddKit(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	var req kitRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || len(req.Questions) == 0 {
		http.Error(w, "Name and at least one question are required", http.StatusBadRequest)
		return
	}

	if len(session.KitIDs) >= MaxKitsPerUser {
		s.respondError(w, apperr.New(apperr.Conflict, "kit limit reached"))
		return
	}

	kit := &models.Kit{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   session.UserID,
	}
	for _, q := range req.Questions {
		kit.Questions = append(kit.Questions, models.KitQuestion{
			ID:       uuid.NewString(),
			Question: q.Question,
			Answer:   q.Answer,
		})
	}

	if err := s.kits.Create(kit); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, kit)
}

// handleGetKit returns a kit with its questions and owner info
func (s *Server) handleGetKit(w http.ResponseWriter, r *http.Request) {
	kit, err := s.kits.GetByID(mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	if kit == nil {
		s.respondError(w, apperr.New(apperr.NotFound, "kit not found"))
		return
	}
	respondJSON(w, http.StatusOK, kit)
}

// handleGetKitWithProgress returns a kit plus the caller's progress row,
// which is null when the user hasn't studied the kit yet
func (s *Server) handleGetKitWithProgress(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	kit, err := s.kits.GetByID(mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	if kit == nil {
		s.respondError(w, apperr.New(apperr.NotFound, "kit not found"))
		return
	}

	progress, err := s.progress.Get(kit.ID, session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kit":      kit,
		"progress": progress,
	})
}

// handleKitsByUser returns a user's kits, newest first
func (s *Server) handleKitsByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	kits, err := s.kits.GetByUserNewest(userID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, kits)
}

// handleEditKit replaces a kit's name, description and question list.
// Ownership means the kit id is in the session user's owned-kit list.
func (s *Server) handleEditKit(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	kitID := mux.Vars(r)["id"]

	if !session.OwnsKit(kitID) {
		s.respondError(w, apperr.New(apperr.Conflict, "not the kit owner"))
		return
	}

	var req kitRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || len(req.Questions) == 0 {
		http.Error(w, "Name and at least one question are required", http.StatusBadRequest)
		return
	}

	kit := &models.Kit{
		ID:          kitID,
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   session.UserID,
	}
	for _, q := range req.Questions {
		kit.Questions = append(kit.Questions, models.KitQuestion{
			ID:       uuid.NewString(),
			Question: q.Question,
			Answer:   q.Answer,
		})
	}

	if err := s.kits.Update(kit); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// handleDeleteKit removes a kit owned by the caller
func (s *Server) handleDeleteKit(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	kitID := mux.Vars(r)["id"]

	if !session.OwnsKit(kitID) {
		s.respondError(w, apperr.New(apperr.Conflict, "not the kit owner"))
		return
	}

	if err := s.kits.Delete(kitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.respondError(w, apperr.New(apperr.NotFound, "kit not found"))
			return
		}
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// handleSearchKits searches kits by name, paged by skip
func (s *Server) handleSearchKits(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

	kits, err := s.kits.Search(name, searchPageSize, skip)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, kits)
}

// handleImportKit creates a kit from an uploaded .xlsx or .csv file
func (s *Server) handleImportKit(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	if len(session.KitIDs) >= MaxKitsPerUser {
		s.respondError(w, apperr.New(apperr.Conflict, "kit limit reached"))
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	questions, result, err := excel.ImportQuestions(file, header.Filename, excel.DefaultImportConfig())
	if err != nil {
		http.Error(w, "Could not parse file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(questions) == 0 {
		http.Error(w, "File contains no questions", http.StatusBadRequest)
		return
	}

	kit := &models.Kit{
		ID:          uuid.NewString(),
		Name:        name,
		Description: r.FormValue("description"),
		CreatedBy:   session.UserID,
		Questions:   questions,
	}
	if err := s.kits.Create(kit); err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kit":    kit,
		"import": result,
	})
}

// handleStartExam returns the kit's questions with the initial
// candidate answer set, mirroring what the exam view needs to render
// its first question
func (s *Server) handleStartExam(w http.ResponseWriter, r *http.Request) {
	kit, err := s.kits.GetByID(mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	if kit == nil {
		s.respondError(w, apperr.New(apperr.NotFound, "kit not found"))
		return
	}

	exam, err := study.NewExamSession(kit.Questions, nil)
	if err != nil {
		s.respondError(w, apperr.New(apperr.Conflict, "kit has no questions"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions":      kit.Questions,
		"initialAnswers": exam.Candidates(),
	})
}

// handleStartLearn returns the caller's remaining learn stack for a
// kit: the question list filtered by persisted progress
func (s *Server) handleStartLearn(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)

	kit, err := s.kits.GetByID(mux.Vars(r)["id"])
	if err != nil {
		s.respondError(w, err)
		return
	}
	if kit == nil {
		s.respondError(w, apperr.New(apperr.NotFound, "kit not found"))
		return
	}

	progress, err := s.progress.Get(kit.ID, session.UserID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	learn := study.NewLearnSession(kit.Questions, progress)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kit":             kit,
		"stack":           learn.Stack(),
		"knownPercentage": learn.KnownPercentage(),
	})
}
