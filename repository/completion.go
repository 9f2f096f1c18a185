package repository

import "context"

// CompletionRepository owns the durable per-(user, task) completion flags.
// Implementations must guarantee at most one record per pair, including
// under concurrent writes for the same key.
type CompletionRepository interface {
	// SetCompletion upserts the flag for the pair in a single atomic write.
	SetCompletion(ctx context.Context, userID int64, taskID string, completed bool) error
	// GetCompletion reports the flag; an absent record is false, not an error.
	GetCompletion(ctx context.Context, userID int64, taskID string) (bool, error)
	// ListCompletions returns only pairs that have a record. Catalog tasks
	// missing from the map are simply not completed.
	ListCompletions(ctx context.Context, userID int64) (map[string]bool, error)
}
