package database

import (
	"testing"
)

func TestCSRFTokenConsumeOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	sessionID := createTestSession(t, user.ID)

	repo := NewCSRFTokenRepository()
	if err := repo.Replace("token-1", sessionID); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	ok, err := repo.Consume("token-1", sessionID)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if !ok {
		t.Fatal("a freshly issued token should consume successfully")
	}

	// The token is spent, a second use must fail
	ok, err = repo.Consume("token-1", sessionID)
	if err != nil {
		t.Fatalf("second Consume: %v", err)
	}
	if ok {
		t.Fatal("a spent token must not consume a second time")
	}
}

func TestCSRFTokenBoundToSession(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	aliceSession := createTestSession(t, alice.ID)
	bobSession := createTestSession(t, bob.ID)

	repo := NewCSRFTokenRepository()
	if err := repo.Replace("alice-token", aliceSession); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	// A token issued for one session is useless under another
	ok, err := repo.Consume("alice-token", bobSession)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if ok {
		t.Fatal("a token must not consume under a different session")
	}

	// The failed attempt must not have spent the token for its owner
	ok, err = repo.Consume("alice-token", aliceSession)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if !ok {
		t.Fatal("the token should remain valid for the session it was issued to")
	}
}

func TestCSRFTokenReplaceInvalidatesPrevious(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	sessionID := createTestSession(t, user.ID)

	repo := NewCSRFTokenRepository()
	if err := repo.Replace("token-1", sessionID); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := repo.Replace("token-2", sessionID); err != nil {
		t.Fatalf("second Replace: %v", err)
	}

	ok, err := repo.Consume("token-1", sessionID)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if ok {
		t.Fatal("issuing a new token must invalidate the previous one")
	}

	ok, err = repo.Consume("token-2", sessionID)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if !ok {
		t.Fatal("the latest issued token should be valid")
	}
}

func TestCSRFTokenUnknownToken(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	sessionID := createTestSession(t, user.ID)

	ok, err := NewCSRFTokenRepository().Consume("never-issued", sessionID)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if ok {
		t.Fatal("a token that was never issued must not consume")
	}
}

func TestCSRFTokenDeletedWithSession(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	sessionID := createTestSession(t, user.ID)

	csrf := NewCSRFTokenRepository()
	if err := csrf.Replace("token-1", sessionID); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if err := NewSessionRepository().Delete(sessionID); err != nil {
		t.Fatalf("Delete session: %v", err)
	}

	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM csrf_tokens WHERE session_id = $1", sessionID); err != nil {
		t.Fatalf("count csrf tokens: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d csrf tokens survived the session delete cascade", count)
	}
}
