package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questgo/backend/repository"
)

type completionRepository struct {
	pool *pgxpool.Pool
}

// NewCompletionRepository returns a Postgres-backed implementation of
// CompletionRepository. The composite primary key on (user_id, task_id)
// makes the upsert converge to a single record under concurrent writes.
func NewCompletionRepository(pool *pgxpool.Pool) repository.CompletionRepository {
	return &completionRepository{pool: pool}
}

func (r *completionRepository) SetCompletion(ctx context.Context, userID int64, taskID string, completed bool) error {
	const query = `
	INSERT INTO completions (user_id, task_id, completed)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, task_id) DO UPDATE
	SET completed = EXCLUDED.completed,
		updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, userID, taskID, completed)
	return err
}

func (r *completionRepository) GetCompletion(ctx context.Context, userID int64, taskID string) (bool, error) {
	const query = `
	SELECT completed FROM completions
	WHERE user_id = $1 AND task_id = $2
	`
	var completed bool
	if err := r.pool.QueryRow(ctx, query, userID, taskID).Scan(&completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return completed, nil
}

func (r *completionRepository) ListCompletions(ctx context.Context, userID int64) (map[string]bool, error) {
	const query = `
	SELECT task_id, completed FROM completions
	WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := make(map[string]bool)
	for rows.Next() {
		var (
			taskID    string
			completed bool
		)
		if err := rows.Scan(&taskID, &completed); err != nil {
			return nil, err
		}
		completions[taskID] = completed
	}
	return completions, rows.Err()
}
