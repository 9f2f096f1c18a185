package repository

import (
	"context"

	"github.com/questgo/backend/domain"
)

// UserRepository owns the durable user table. Users are created on first
// activation and never deleted.
type UserRepository interface {
	// EnsureUser inserts the user if absent. An existing handle is only
	// replaced when the incoming one is non-empty.
	EnsureUser(ctx context.Context, user *domain.User) error
}
