package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/example/quizkit/internal/apperr"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
	}
}

// respondError maps an error onto the failure taxonomy and writes it.
// Internal errors are logged with detail but answered generically.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)

	message := "something went wrong"
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if code == apperr.Internal {
		log.Printf("Internal error: %v", err)
		message = "something went wrong"
	}

	respondJSON(w, apperr.HTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": message,
	})
}

// decodeJSON parses a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
