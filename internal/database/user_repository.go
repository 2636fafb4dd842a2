package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/quizkit/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create inserts a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, email, nickname, password, description, avatar_seed)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := DB.Exec(
		query,
		user.ID,
		strings.ToLower(user.Email),
		user.Nickname,
		user.Password,
		user.Description,
		user.AvatarSeed,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	return DB.Get(user, "SELECT * FROM users WHERE id = $1", user.ID)
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %v", err)
	}
	return &user, nil
}

// GetByEmail returns a user by email. Emails are stored lower-cased,
// so the lookup lower-cases its argument.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE email = $1", strings.ToLower(email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %v", err)
	}
	return &user, nil
}

// ExistsByEmailOrNickname reports whether a user with the given email
// or nickname already exists, compared case-insensitively.
func (r *UserRepository) ExistsByEmailOrNickname(email, nickname string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1) OR LOWER(nickname) = LOWER($2)"
	err := DB.Get(&count, query, email, nickname)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing user: %v", err)
	}
	return count > 0, nil
}

// UpdateProfile updates the mutable profile fields of a user
func (r *UserRepository) UpdateProfile(id, description, avatarSeed string) error {
	query := `
		UPDATE users SET
			description = $1,
			avatar_seed = $2,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	_, err := DB.Exec(query, description, avatarSeed, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	return nil
}

// Search returns up to limit users whose nickname contains the given
// text, compared case-insensitively, skipping the first skip matches.
func (r *UserRepository) Search(nickname string, limit, skip int) ([]models.User, error) {
	var users []models.User
	query := `
		SELECT id, email, nickname, password, description, avatar_seed, created_at, updated_at
		FROM users
		WHERE LOWER(nickname) LIKE LOWER($1)
		ORDER BY nickname ASC
		LIMIT $2 OFFSET $3
	`
	err := DB.Select(&users, query, "%"+nickname+"%", limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %v", err)
	}
	return users, nil
}
