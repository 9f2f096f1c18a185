package domain

// TaskDefinition describes one location-bound quest task from the catalog.
// Definitions are immutable for the process lifetime.
type TaskDefinition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
