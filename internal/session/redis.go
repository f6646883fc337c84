// Package session provides server-side session stores mapping opaque
// session IDs to serialized identity payloads.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dvoronin/membergate/internal/model"
)

const redisKeyPrefix = "session:"

var _ model.SessionStore = (*RedisStore)(nil)

// RedisStore implements model.SessionStore on top of redis. Expiry is
// delegated to redis key TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore and verifies connectivity.
func NewRedisStore(ctx context.Context, client *redis.Client) (*RedisStore, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Set stores the payload under the session ID with the given TTL.
func (s *RedisStore) Set(ctx context.Context, sessionID, payload string, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKeyPrefix+sessionID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session key: %w", err)
	}
	return nil
}

// Get returns the payload for the session ID, or model.ErrNotFound if the
// key is missing or expired.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", model.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session key: %w", err)
	}
	return payload, nil
}

// Delete removes the session ID. Deleting a missing key is not an error.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session key: %w", err)
	}
	return nil
}
