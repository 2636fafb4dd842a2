package database

import (
	"fmt"
)

// CSRFTokenRepository handles database operations for single-use CSRF tokens
type CSRFTokenRepository struct{}

// NewCSRFTokenRepository creates a new repository instance
func NewCSRFTokenRepository() *CSRFTokenRepository {
	return &CSRFTokenRepository{}
}

// Replace stores token as the one live CSRF token for the session,
// discarding any previously issued token. The session_id column is
// unique, so the delete+insert pair keeps at most one row per session.
func (r *CSRFTokenRepository) Replace(token, sessionID string) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin csrf transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM csrf_tokens WHERE session_id = $1", sessionID); err != nil {
		return fmt.Errorf("failed to discard previous csrf token: %v", err)
	}
	if _, err := tx.Exec("INSERT INTO csrf_tokens (id, session_id) VALUES ($1, $2)", token, sessionID); err != nil {
		return fmt.Errorf("failed to store csrf token: %v", err)
	}
	return tx.Commit()
}

// Consume attempts to use a token for the given session. The delete
// matches on both the token value and the session id; its row count is
// the success signal. Exactly one matched row means the token was
// valid and is now spent. Zero rows means invalid, already used, or
// issued for a different session - callers must treat all three the
// same way.
func (r *CSRFTokenRepository) Consume(token, sessionID string) (bool, error) {
	result, err := DB.Exec("DELETE FROM csrf_tokens WHERE id = $1 AND session_id = $2", token, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to consume csrf token: %v", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count consumed csrf tokens: %v", err)
	}
	return count == 1, nil
}
