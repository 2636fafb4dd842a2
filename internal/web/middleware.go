package web

import (
	"context"
	"net/http"

	"github.com/example/quizkit/internal/apperr"
	"github.com/example/quizkit/internal/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionFrom returns the resolved session stashed by requireSession.
// Handlers behind the middleware can rely on it being present.
func sessionFrom(r *http.Request) *auth.ResolvedSession {
	session, _ := r.Context().Value(sessionContextKey).(*auth.ResolvedSession)
	return session
}

// requireSession resolves the session cookie and rejects anonymous
// requests. Lookup failures degrade to anonymous, so the client sees
// the same UNAUTHENTICATED answer for a missing cookie and a stale one.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.auth.Authenticate(r)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if session == nil {
			s.respondError(w, apperr.New(apperr.Unauthenticated, "login required"))
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// requireCSRF wraps requireSession and additionally consumes the
// single-use token from the csrf-token header. A missing header, an
// unknown token, a reused token and a token bound to another session
// are indistinguishable to the client.
func (s *Server) requireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return s.requireSession(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFrom(r)

		token := r.Header.Get(auth.CSRFHeaderName)
		if token == "" {
			s.respondError(w, apperr.New(apperr.ForbiddenCSRF, "missing csrf token"))
			return
		}

		ok, err := s.auth.ConsumeCSRFToken(token, session.SessionID)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if !ok {
			s.respondError(w, apperr.New(apperr.ForbiddenCSRF, "invalid csrf token"))
			return
		}
		next(w, r)
	})
}
