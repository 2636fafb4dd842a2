package database

import (
	"database/sql"
	"fmt"

	"github.com/example/quizkit/pkg/models"
)

// KitRepository handles database operations for kits and their questions
type KitRepository struct{}

// NewKitRepository creates a new repository instance
func NewKitRepository() *KitRepository {
	return &KitRepository{}
}

// Create inserts a kit together with its questions in one transaction
func (r *KitRepository) Create(kit *models.Kit) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin kit transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO kits (id, name, description, created_by) VALUES ($1, $2, $3, $4)",
		kit.ID, kit.Name, kit.Description, kit.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create kit: %v", err)
	}

	for i := range kit.Questions {
		q := &kit.Questions[i]
		q.KitID = kit.ID
		q.Position = i
		_, err = tx.Exec(
			"INSERT INTO kit_questions (id, kit_id, question, answer, position) VALUES ($1, $2, $3, $4, $5)",
			q.ID, q.KitID, q.Question, q.Answer, q.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to create kit question: %v", err)
		}
	}

	return tx.Commit()
}

// GetByID returns a kit with its questions and owner info, or nil when
// no kit with that id exists
func (r *KitRepository) GetByID(id string) (*models.Kit, error) {
	var kit models.Kit
	query := `
		SELECT k.id, k.name, k.description, k.created_by, k.created_at, k.updated_at
		FROM kits k WHERE k.id = $1
	`
	err := DB.Get(&kit, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kit: %v", err)
	}

	err = DB.QueryRow("SELECT nickname, avatar_seed FROM users WHERE id = $1", kit.CreatedBy).
		Scan(&kit.OwnerNickname, &kit.OwnerAvatarSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to get kit owner: %v", err)
	}

	questions, err := r.GetQuestions(id)
	if err != nil {
		return nil, err
	}
	kit.Questions = questions
	return &kit, nil
}

// GetQuestions returns the ordered question list of a kit
func (r *KitRepository) GetQuestions(kitID string) ([]models.KitQuestion, error) {
	var questions []models.KitQuestion
	query := `
		SELECT id, kit_id, question, answer, position
		FROM kit_questions WHERE kit_id = $1 ORDER BY position ASC
	`
	if err := DB.Select(&questions, query, kitID); err != nil {
		return nil, fmt.Errorf("failed to get kit questions: %v", err)
	}
	return questions, nil
}

// GetByUserNewest returns all kits created by a user, newest first
func (r *KitRepository) GetByUserNewest(userID string) ([]models.Kit, error) {
	var kits []models.Kit
	query := `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM kits WHERE created_by = $1 ORDER BY created_at DESC
	`
	if err := DB.Select(&kits, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user kits: %v", err)
	}
	return kits, nil
}

// GetIDsByUser returns the ids of all kits owned by a user
func (r *KitRepository) GetIDsByUser(userID string) ([]string, error) {
	var ids []string
	if err := DB.Select(&ids, "SELECT id FROM kits WHERE created_by = $1", userID); err != nil {
		return nil, fmt.Errorf("failed to get user kit ids: %v", err)
	}
	return ids, nil
}

// CountByUser returns how many kits a user owns
func (r *KitRepository) CountByUser(userID string) (int, error) {
	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM kits WHERE created_by = $1", userID); err != nil {
		return 0, fmt.Errorf("failed to count user kits: %v", err)
	}
	return count, nil
}

// Update replaces the kit's name, description and entire question list
func (r *KitRepository) Update(kit *models.Kit) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin kit transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"UPDATE kits SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		kit.Name, kit.Description, kit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update kit: %v", err)
	}

	// Replace questions wholesale, matching the edit form semantics
	if _, err := tx.Exec("DELETE FROM kit_questions WHERE kit_id = $1", kit.ID); err != nil {
		return fmt.Errorf("failed to clear kit questions: %v", err)
	}
	for i := range kit.Questions {
		q := &kit.Questions[i]
		q.KitID = kit.ID
		q.Position = i
		_, err = tx.Exec(
			"INSERT INTO kit_questions (id, kit_id, question, answer, position) VALUES ($1, $2, $3, $4, $5)",
			q.ID, q.KitID, q.Question, q.Answer, q.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert kit question: %v", err)
		}
	}

	return tx.Commit()
}

// Delete removes a kit. Questions, progress and favorites cascade.
func (r *KitRepository) Delete(id string) error {
	result, err := DB.Exec("DELETE FROM kits WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete kit: %v", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted kits: %v", err)
	}
	if count == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Search returns up to limit kits whose name contains the given text,
// compared case-insensitively, skipping the first skip matches.
func (r *KitRepository) Search(name string, limit, skip int) ([]models.Kit, error) {
	query := `
		SELECT k.id, k.name, k.description, k.created_by, k.created_at, k.updated_at,
		       u.nickname, u.avatar_seed
		FROM kits k
		JOIN users u ON u.id = k.created_by
		WHERE LOWER(k.name) LIKE LOWER($1)
		ORDER BY k.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := DB.Query(query, "%"+name+"%", limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to search kits: %v", err)
	}
	defer rows.Close()

	var kits []models.Kit
	for rows.Next() {
		var kit models.Kit
		err := rows.Scan(
			&kit.ID,
			&kit.Name,
			&kit.Description,
			&kit.CreatedBy,
			&kit.CreatedAt,
			&kit.UpdatedAt,
			&kit.OwnerNickname,
			&kit.OwnerAvatarSeed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kit row: %v", err)
		}
		kits = append(kits, kit)
	}
	return kits, rows.Err()
}
