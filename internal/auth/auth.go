package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/example/quizkit/internal/apperr"
	"github.com/example/quizkit/internal/database"
	"github.com/example/quizkit/pkg/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionCookieName is the cookie carrying the opaque session token
	SessionCookieName = "sessionId"

	// sessionTokenBytes is the entropy of the raw cookie token
	sessionTokenBytes = 32

	// bcryptCost for password hashing
	bcryptCost = 12

	// cookieMaxAge keeps sessions alive for roughly a year; the
	// janitor prunes the server side independently
	cookieMaxAge = 365 * 24 * 60 * 60
)

// ResolvedSession is the authenticated identity attached to a request,
// including the minimal ownership projection used by authorization
// checks. SessionID is the hashed storage key, never the raw token.
type ResolvedSession struct {
	SessionID string
	UserID    string
	Nickname  string
	KitIDs    []string
	NoteIDs   []string
}

// OwnsKit reports whether the kit id is in the user's owned-kit list
func (s *ResolvedSession) OwnsKit(kitID string) bool {
	for _, id := range s.KitIDs {
		if id == kitID {
			return true
		}
	}
	return false
}

// OwnsNote reports whether the note id is in the user's owned-note list
func (s *ResolvedSession) OwnsNote(noteID string) bool {
	for _, id := range s.NoteIDs {
		if id == noteID {
			return true
		}
	}
	return false
}

// Service implements the session and CSRF protocols
type Service struct {
	secret       []byte
	cookieSecure bool

	users    *database.UserRepository
	sessions *database.SessionRepository
	csrf     *database.CSRFTokenRepository
	kits     *database.KitRepository
	notes    *database.NoteRepository
}

// NewService creates an auth service. The secret keys the session id
// derivation and must stay stable across restarts.
func NewService(secret string, cookieSecure bool) *Service {
	return &Service{
		secret:       []byte(secret),
		cookieSecure: cookieSecure,
		users:        database.NewUserRepository(),
		sessions:     database.NewSessionRepository(),
		csrf:         database.NewCSRFTokenRepository(),
		kits:         database.NewKitRepository(),
		notes:        database.NewNoteRepository(),
	}
}

// DeriveSessionID turns a raw cookie token into the stored session id.
// The keyed one-way derivation means a leaked database row cannot be
// turned back into a usable cookie value.
func (s *Service) DeriveSessionID(token string) string {
	mac := hmac.New(sha512.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// generateToken returns n random bytes as a hex string
func generateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %v", err)
	}
	return hex.EncodeToString(b), nil
}

// Authenticate resolves the request's session cookie. A missing
// cookie, unknown token or deleted session all mean "not logged in"
// and return (nil, nil) - anonymous is a normal state, not an error.
func (s *Service) Authenticate(r *http.Request) (*ResolvedSession, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	session, err := s.sessions.GetByID(s.DeriveSessionID(cookie.Value))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.users.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	kitIDs, err := s.kits.GetIDsByUser(user.ID)
	if err != nil {
		return nil, err
	}
	noteIDs, err := s.notes.GetIDsByUser(user.ID)
	if err != nil {
		return nil, err
	}

	return &ResolvedSession{
		SessionID: session.ID,
		UserID:    user.ID,
		Nickname:  user.Nickname,
		KitIDs:    kitIDs,
		NoteIDs:   noteIDs,
	}, nil
}

// Register creates a new account and logs it in
func (s *Service) Register(w http.ResponseWriter, email, nickname, password string) (*models.User, error) {
	exists, err := s.users.ExistsByEmailOrNickname(email, nickname)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "a user with this nickname or email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:         uuid.NewString(),
		Email:      strings.ToLower(email),
		Nickname:   nickname,
		Password:   string(hashed),
		AvatarSeed: uuid.NewString(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	if err := s.startSession(w, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and starts a new session
func (s *Service) Login(w http.ResponseWriter, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.NotFound, "no such user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "wrong password")
	}

	if err := s.startSession(w, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout deletes the server-side session and clears the cookie. The
// delete is best-effort: a failure still logs the client out.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		// Swallow failures - the cookie is cleared regardless
		_ = s.sessions.Delete(s.DeriveSessionID(cookie.Value))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// startSession generates an opaque token, stores its keyed hash and
// sets the session cookie
func (s *Service) startSession(w http.ResponseWriter, userID string) error {
	token, err := generateToken(sessionTokenBytes)
	if err != nil {
		return err
	}
	if err := s.sessions.Create(s.DeriveSessionID(token), userID); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}
