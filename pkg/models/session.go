package models

import "time"

// Session represents a server-side login session.
// ID is the keyed hash of the opaque cookie token - the raw token
// is never stored.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CSRFToken is a single-use mutation token bound to a session.
// At most one live token exists per session.
type CSRFToken struct {
	ID        string `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`
}
