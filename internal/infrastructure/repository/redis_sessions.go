package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"files-manager/internal/domain/entities"
	domain "files-manager/internal/domain/repository"
)

// RedisSessions implements the session store on top of a Redis instance,
// using SET with expiry for the token TTL.
type RedisSessions struct {
	client *redis.Client
}

// NewRedisSessions creates a session store around an existing client. The
// client is owned by the caller and closed on shutdown there.
func NewRedisSessions(client *redis.Client) domain.Sessions {
	return &RedisSessions{client: client}
}

// Set stores value under key with the given expiry, replacing any
// previous entry.
func (r *RedisSessions) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Get returns the stored value, or entities.ErrSessionNotFound when the
// key is absent or has expired.
func (r *RedisSessions) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", entities.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Del removes the key. Removing an absent key succeeds.
func (r *RedisSessions) Del(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Ping reports whether the Redis connection is alive.
func (r *RedisSessions) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
