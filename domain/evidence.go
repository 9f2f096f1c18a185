package domain

import "time"

// Evidence is the proof artifact submitted to credit a task. The gateway
// keeps the binary; we store its reference keyed by user, task and time.
type Evidence struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	TaskID      string    `json:"task_id"`
	FileID      string    `json:"file_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}
