package transport

// ActivateRequest is the gateway's forwarded deep-link event. TaskKey is
// the raw argument after the scan; it may be empty or unknown.
type ActivateRequest struct {
	UserID  int64  `json:"user_id"`
	Handle  string `json:"handle"`
	TaskKey string `json:"task_key"`
}

// EvidenceRequest carries the gateway-side reference of a submitted photo.
type EvidenceRequest struct {
	UserID int64  `json:"user_id"`
	FileID string `json:"file_id"`
}

// CancelRequest asks to drop (and possibly revert) the active task.
type CancelRequest struct {
	UserID int64 `json:"user_id"`
}
