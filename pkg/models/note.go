package models

import "time"

// Note visibility values
const (
	VisibilityPublic  = "PUBLIC"
	VisibilityPrivate = "PRIVATE"
)

// Note represents a rich-text note owned by a user
type Note struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Data       string    `json:"data" db:"data"` // serialized editor document
	Visibility string    `json:"visibility" db:"visibility"`
	CreatedBy  string    `json:"created_by" db:"created_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	OwnerNickname   string `json:"owner_nickname,omitempty" db:"-"`
	OwnerAvatarSeed string `json:"owner_avatar_seed,omitempty" db:"-"`
}
