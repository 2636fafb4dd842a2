package models

import "time"

// Kit represents a named collection of flashcard questions owned by a user
type Kit struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Populated by queries that join related rows
	Questions       []KitQuestion `json:"questions,omitempty" db:"-"`
	OwnerNickname   string        `json:"owner_nickname,omitempty" db:"-"`
	OwnerAvatarSeed string        `json:"owner_avatar_seed,omitempty" db:"-"`
}

// KitQuestion represents a single question/answer pair inside a kit
type KitQuestion struct {
	ID       string `json:"id" db:"id"`
	KitID    string `json:"kit_id" db:"kit_id"`
	Question string `json:"question" db:"question"`
	Answer   string `json:"answer" db:"answer"`
	Position int    `json:"position" db:"position"`
}
