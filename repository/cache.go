package repository

import (
	"context"

	"github.com/questgo/backend/domain"
)

// ProgressCache holds rendered progress views per user. It is strictly an
// optimization: a miss or a cache fault never fails the calling transition.
type ProgressCache interface {
	// Get returns the cached view, or (nil, nil) on a miss.
	Get(ctx context.Context, userID int64) (*domain.ProgressView, error)
	Set(ctx context.Context, userID int64, view *domain.ProgressView) error
	Invalidate(ctx context.Context, userID int64) error
}
