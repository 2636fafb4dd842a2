package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/quizkit/internal/apperr"
	"github.com/example/quizkit/internal/database"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	if err := database.ConnectTest(); err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewService("test-secret", false)
}

// sessionCookie extracts the session cookie from a recorded response
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestDeriveSessionID(t *testing.T) {
	service := NewService("secret-a", false)

	first := service.DeriveSessionID("some-token")
	second := service.DeriveSessionID("some-token")
	if first != second {
		t.Fatal("derivation is not deterministic for the same token")
	}
	if first == service.DeriveSessionID("other-token") {
		t.Fatal("different tokens derived the same session id")
	}

	// A different key must produce a different id for the same token
	other := NewService("secret-b", false)
	if first == other.DeriveSessionID("some-token") {
		t.Fatal("different secrets derived the same session id")
	}

	if first == "some-token" {
		t.Fatal("the stored id must not equal the raw token")
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	service := setupService(t)

	rec := httptest.NewRecorder()
	user, err := service.Register(rec, "Alice@Example.com", "alice", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %q, want lower-cased", user.Email)
	}
	if user.Password == "password123" {
		t.Fatal("password stored in plain text")
	}

	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	session, err := service.Authenticate(req)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if session == nil {
		t.Fatal("a fresh session cookie did not authenticate")
	}
	if session.UserID != user.ID || session.Nickname != "alice" {
		t.Fatalf("resolved session = %+v, want user %s", session, user.ID)
	}
	if session.SessionID == cookie.Value {
		t.Fatal("resolved session id must be the hash, not the raw token")
	}
}

func TestAuthenticateAnonymous(t *testing.T) {
	service := setupService(t)

	// No cookie at all
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	session, err := service.Authenticate(req)
	if err != nil || session != nil {
		t.Fatalf("no cookie: session=%v err=%v, want nil, nil", session, err)
	}

	// A cookie that matches no stored session
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged-token"})
	session, err = service.Authenticate(req)
	if err != nil || session != nil {
		t.Fatalf("unknown token: session=%v err=%v, want nil, nil", session, err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	service := setupService(t)

	if _, err := service.Register(httptest.NewRecorder(), "alice@example.com", "alice", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		nickname string
	}{
		{name: "same email", email: "alice@example.com", nickname: "alice2"},
		{name: "same email different case", email: "ALICE@example.com", nickname: "alice3"},
		{name: "same nickname", email: "other@example.com", nickname: "alice"},
		{name: "same nickname different case", email: "other@example.com", nickname: "ALICE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(httptest.NewRecorder(), tt.email, tt.nickname, "password123")
			if apperr.CodeOf(err) != apperr.Conflict {
				t.Fatalf("got %v, want a conflict", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	service := setupService(t)

	if _, err := service.Register(httptest.NewRecorder(), "alice@example.com", "alice", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		user, err := service.Login(rec, "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if user.Nickname != "alice" {
			t.Fatalf("nickname = %q, want alice", user.Nickname)
		}
		sessionCookie(t, rec)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(httptest.NewRecorder(), "nobody@example.com", "password123")
		if apperr.CodeOf(err) != apperr.NotFound {
			t.Fatalf("got %v, want not found", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(httptest.NewRecorder(), "alice@example.com", "wrong")
		if apperr.CodeOf(err) != apperr.Unauthenticated {
			t.Fatalf("got %v, want unauthenticated", err)
		}
	})
}

func TestLogout(t *testing.T) {
	service := setupService(t)

	rec := httptest.NewRecorder()
	if _, err := service.Register(rec, "alice@example.com", "alice", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	cookie := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(cookie)
	logoutRec := httptest.NewRecorder()
	service.Logout(logoutRec, req)

	cleared := sessionCookie(t, logoutRec)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("logout did not clear the cookie: %+v", cleared)
	}

	// The old token no longer authenticates
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	session, err := service.Authenticate(req)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if session != nil {
		t.Fatal("session still valid after logout")
	}
}

func TestCSRFTokenLifecycle(t *testing.T) {
	service := setupService(t)

	rec := httptest.NewRecorder()
	if _, err := service.Register(rec, "alice@example.com", "alice", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, rec))
	session, err := service.Authenticate(req)
	if err != nil || session == nil {
		t.Fatalf("Authenticate: session=%v err=%v", session, err)
	}

	token, err := service.IssueCSRFToken(session.SessionID)
	if err != nil {
		t.Fatalf("IssueCSRFToken: %v", err)
	}

	ok, err := service.ConsumeCSRFToken(token, session.SessionID)
	if err != nil || !ok {
		t.Fatalf("first consume: ok=%v err=%v", ok, err)
	}
	ok, err = service.ConsumeCSRFToken(token, session.SessionID)
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if ok {
		t.Fatal("a token consumed twice")
	}
}
