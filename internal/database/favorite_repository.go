package database

import (
	"fmt"

	"github.com/example/quizkit/pkg/models"
)

// FavoriteRepository handles database operations for favored kits and notes
type FavoriteRepository struct{}

// NewFavoriteRepository creates a new repository instance
func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{}
}

// ToggleKit favors the kit for the user, or unfavors it when it is
// already favored. Returns true when the kit ends up favored.
func (r *FavoriteRepository) ToggleKit(kitID, userID string) (bool, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM favorite_kits WHERE kit_id = $1 AND user_id = $2", kitID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite kit: %v", err)
	}

	if count > 0 {
		_, err = DB.Exec("DELETE FROM favorite_kits WHERE kit_id = $1 AND user_id = $2", kitID, userID)
		if err != nil {
			return false, fmt.Errorf("failed to remove favorite kit: %v", err)
		}
		return false, nil
	}

	_, err = DB.Exec("INSERT INTO favorite_kits (kit_id, user_id) VALUES ($1, $2)", kitID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add favorite kit: %v", err)
	}
	return true, nil
}

// ToggleNote favors the note for the user, or unfavors it when it is
// already favored. Returns true when the note ends up favored.
func (r *FavoriteRepository) ToggleNote(noteID, userID string) (bool, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM favorite_notes WHERE note_id = $1 AND user_id = $2", noteID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite note: %v", err)
	}

	if count > 0 {
		_, err = DB.Exec("DELETE FROM favorite_notes WHERE note_id = $1 AND user_id = $2", noteID, userID)
		if err != nil {
			return false, fmt.Errorf("failed to remove favorite note: %v", err)
		}
		return false, nil
	}

	_, err = DB.Exec("INSERT INTO favorite_notes (note_id, user_id) VALUES ($1, $2)", noteID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add favorite note: %v", err)
	}
	return true, nil
}

// ListKitsByUser returns the kits the user has favored, newest first
func (r *FavoriteRepository) ListKitsByUser(userID string) ([]models.Kit, error) {
	var kits []models.Kit
	query := `
		SELECT k.id, k.name, k.description, k.created_by, k.created_at, k.updated_at
		FROM favorite_kits f
		JOIN kits k ON k.id = f.kit_id
		WHERE f.user_id = $1
		ORDER BY k.created_at DESC
	`
	if err := DB.Select(&kits, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorite kits: %v", err)
	}
	return kits, nil
}

// ListNotesByUser returns the public notes the user has favored,
// newest first. Notes made private after being favored drop out.
func (r *FavoriteRepository) ListNotesByUser(userID string) ([]models.Note, error) {
	var notes []models.Note
	query := `
		SELECT n.id, n.name, n.data, n.visibility, n.created_by, n.created_at, n.updated_at
		FROM favorite_notes f
		JOIN notes n ON n.id = f.note_id
		WHERE f.user_id = $1 AND n.visibility = 'PUBLIC'
		ORDER BY n.created_at DESC
	`
	if err := DB.Select(&notes, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorite notes: %v", err)
	}
	return notes, nil
}
