package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/quizkit/pkg/models"
)

// ProgressRepository handles database operations for per-kit learning progress
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// Get returns the progress row for a (kit, user) pair, or nil when the
// user has no recorded progress for that kit
func (r *ProgressRepository) Get(kitID, userID string) (*models.Progress, error) {
	var progress models.Progress
	var learntJSON string

	query := "SELECT kit_id, user_id, learnt, updated_at FROM progress WHERE kit_id = $1 AND user_id = $2"
	err := DB.QueryRow(query, kitID, userID).Scan(
		&progress.KitID,
		&progress.UserID,
		&learntJSON,
		&progress.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %v", err)
	}

	// Parse JSON array of learnt question ids
	if learntJSON != "" {
		if err := json.Unmarshal([]byte(learntJSON), &progress.Learnt); err != nil {
			return nil, fmt.Errorf("failed to parse learnt ids: %v", err)
		}
	}

	return &progress, nil
}

// Upsert stores the full learnt set for a (kit, user) pair in a single
// atomic statement. Replacing the stored list with the caller's union
// is what keeps concurrent session-end writes from losing updates, as
// opposed to a check-then-create/update sequence.
func (r *ProgressRepository) Upsert(kitID, userID string, learnt []string) error {
	if learnt == nil {
		learnt = []string{}
	}
	learntJSON, err := json.Marshal(learnt)
	if err != nil {
		return fmt.Errorf("failed to serialize learnt ids: %v", err)
	}

	query := `
		INSERT INTO progress (kit_id, user_id, learnt, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (kit_id, user_id) DO UPDATE SET
			learnt = EXCLUDED.learnt,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := DB.Exec(query, kitID, userID, string(learntJSON)); err != nil {
		return fmt.Errorf("failed to upsert progress: %v", err)
	}
	return nil
}

// Delete resets progress for a (kit, user) pair. Deleting a row that
// doesn't exist is not an error - reset is idempotent.
func (r *ProgressRepository) Delete(kitID, userID string) error {
	_, err := DB.Exec("DELETE FROM progress WHERE kit_id = $1 AND user_id = $2", kitID, userID)
	if err != nil {
		return fmt.Errorf("failed to reset progress: %v", err)
	}
	return nil
}
