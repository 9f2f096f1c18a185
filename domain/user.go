package domain

import "time"

// User is a quest participant, keyed by the stable identifier the
// messaging gateway supplies. The handle is informational only.
type User struct {
	ID        int64     `json:"id"`
	Handle    string    `json:"handle,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
