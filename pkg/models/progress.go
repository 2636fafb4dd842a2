package models

import "time"

// Progress tracks which questions of a kit a user has learnt.
// There is at most one row per (kit, user) pair. Learnt is stored
// as a JSON array of question ids.
type Progress struct {
	KitID     string    `json:"kit_id" db:"kit_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Learnt    []string  `json:"learnt" db:"-"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
