package database

import (
	"database/sql"
	"fmt"

	"github.com/example/quizkit/pkg/models"
)

// NoteRepository handles database operations for notes
type NoteRepository struct{}

// NewNoteRepository creates a new repository instance
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{}
}

// Create inserts a new note
func (r *NoteRepository) Create(note *models.Note) error {
	query := `
		INSERT INTO notes (id, name, data, visibility, created_by)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := DB.Exec(query, note.ID, note.Name, note.Data, note.Visibility, note.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to create note: %v", err)
	}
	return nil
}

// GetByID returns a note with owner info, or nil when absent
func (r *NoteRepository) GetByID(id string) (*models.Note, error) {
	var note models.Note
	query := `
		SELECT id, name, data, visibility, created_by, created_at, updated_at
		FROM notes WHERE id = $1
	`
	err := DB.Get(&note, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %v", err)
	}

	err = DB.QueryRow("SELECT nickname, avatar_seed FROM users WHERE id = $1", note.CreatedBy).
		Scan(&note.OwnerNickname, &note.OwnerAvatarSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to get note owner: %v", err)
	}
	return &note, nil
}

// GetByUserNewest returns all notes created by a user, newest first
func (r *NoteRepository) GetByUserNewest(userID string) ([]models.Note, error) {
	var notes []models.Note
	query := `
		SELECT id, name, data, visibility, created_by, created_at, updated_at
		FROM notes WHERE created_by = $1 ORDER BY created_at DESC
	`
	if err := DB.Select(&notes, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user notes: %v", err)
	}
	return notes, nil
}

// GetIDsByUser returns the ids of all notes owned by a user
func (r *NoteRepository) GetIDsByUser(userID string) ([]string, error) {
	var ids []string
	if err := DB.Select(&ids, "SELECT id FROM notes WHERE created_by = $1", userID); err != nil {
		return nil, fmt.Errorf("failed to get user note ids: %v", err)
	}
	return ids, nil
}

// CountByUser returns how many notes a user owns
func (r *NoteRepository) CountByUser(userID string) (int, error) {
	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM notes WHERE created_by = $1", userID); err != nil {
		return 0, fmt.Errorf("failed to count user notes: %v", err)
	}
	return count, nil
}

// Update replaces a note's name, data and visibility
func (r *NoteRepository) Update(note *models.Note) error {
	query := `
		UPDATE notes SET
			name = $1,
			data = $2,
			visibility = $3,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`
	_, err := DB.Exec(query, note.Name, note.Data, note.Visibility, note.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %v", err)
	}
	return nil
}

// Delete removes a note. Returns sql.ErrNoRows when nothing matched.
func (r *NoteRepository) Delete(id string) error {
	result, err := DB.Exec("DELETE FROM notes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %v", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted notes: %v", err)
	}
	if count == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SearchPublic returns up to limit public notes whose name contains
// the given text, compared case-insensitively.
func (r *NoteRepository) SearchPublic(text string, limit, skip int) ([]models.Note, error) {
	query := `
		SELECT n.id, n.name, n.data, n.visibility, n.created_by, n.created_at, n.updated_at,
		       u.nickname, u.avatar_seed
		FROM notes n
		JOIN users u ON u.id = n.created_by
		WHERE LOWER(n.name) LIKE LOWER($1) AND n.visibility = 'PUBLIC'
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := DB.Query(query, "%"+text+"%", limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %v", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.Name,
			&note.Data,
			&note.Visibility,
			&note.CreatedBy,
			&note.CreatedAt,
			&note.UpdatedAt,
			&note.OwnerNickname,
			&note.OwnerAvatarSeed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %v", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}
