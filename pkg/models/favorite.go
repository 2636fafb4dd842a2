package models

import "time"

// FavoriteKit marks another user's kit as favored
type FavoriteKit struct {
	KitID     string    `json:"kit_id" db:"kit_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FavoriteNote marks another user's note as favored
type FavoriteNote struct {
	NoteID    string    `json:"note_id" db:"note_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
