package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questgo/backend/domain"
	"github.com/questgo/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) EnsureUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	// The conflict branch refreshes the handle only when the gateway sent a
	// non-empty one that actually differs; otherwise the row is untouched.
	const query = `
	INSERT INTO users (user_id, handle)
	VALUES ($1, $2)
	ON CONFLICT (user_id) DO UPDATE
	SET handle = EXCLUDED.handle,
		updated_at = NOW()
	WHERE EXCLUDED.handle <> ''
	  AND users.handle IS DISTINCT FROM EXCLUDED.handle
	`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Handle)
	return err
}
