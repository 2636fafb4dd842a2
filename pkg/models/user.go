package models

import "time"

// User represents a registered account
type User struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Nickname    string    `json:"nickname" db:"nickname"`
	Password    string    `json:"-" db:"password"` // bcrypt hash, never serialized
	Description string    `json:"description" db:"description"`
	AvatarSeed  string    `json:"avatar_seed" db:"avatar_seed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
