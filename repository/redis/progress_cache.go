package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/questgo/backend/domain"
	"github.com/questgo/backend/repository"
)

type progressCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewProgressCache creates a Redis-backed cache of rendered progress views.
func NewProgressCache(client *redislib.Client, ttl time.Duration) repository.ProgressCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &progressCache{
		client: client,
		prefix: "progress:",
		ttl:    ttl,
	}
}

func (c *progressCache) Get(ctx context.Context, userID int64) (*domain.ProgressView, error) {
	result, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}

	var view domain.ProgressView
	if err := json.Unmarshal([]byte(result), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *progressCache) Set(ctx context.Context, userID int64, view *domain.ProgressView) error {
	if view == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), payload, c.ttl).Err()
}

func (c *progressCache) Invalidate(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *progressCache) key(userID int64) string {
	return fmt.Sprintf("%s%d", c.prefix, userID)
}
