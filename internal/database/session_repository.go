package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/quizkit/pkg/models"
)

// SessionRepository handles database operations for login sessions
type SessionRepository struct{}

// NewSessionRepository creates a new repository instance
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// Create inserts a new session row. The id must already be the keyed
// hash of the opaque cookie token.
func (r *SessionRepository) Create(id, userID string) error {
	_, err := DB.Exec("INSERT INTO sessions (id, user_id) VALUES ($1, $2)", id, userID)
	if err != nil {
		return fmt.Errorf("failed to create session: %v", err)
	}
	return nil
}

// GetByID returns the session with the given hashed id, or nil when no
// such session exists. An absent session is not an error.
func (r *SessionRepository) GetByID(id string) (*models.Session, error) {
	var session models.Session
	err := DB.Get(&session, "SELECT id, user_id, created_at FROM sessions WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %v", err)
	}
	return &session, nil
}

// Delete removes a session by its hashed id
func (r *SessionRepository) Delete(id string) error {
	_, err := DB.Exec("DELETE FROM sessions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}
	return nil
}

// DeleteOlderThan removes sessions created before the cutoff and
// returns the number of rows removed. CSRF tokens bound to the removed
// sessions go with them via the foreign key cascade.
func (r *SessionRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := DB.Exec("DELETE FROM sessions WHERE created_at < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %v", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %v", err)
	}
	return count, nil
}
