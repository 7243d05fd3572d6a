package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the visit store with a Redis server so a reload does
// not fork occupancy state even across service instances.  Entries
// carry a TTL since abandoned visits should not accumulate.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps an existing Redis client.  The TTL applies per key
// and is refreshed on every Set.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func redisKey(visitID, key string) string { return "visit:" + visitID + ":" + key }

func (r *Redis) Get(ctx context.Context, visitID, key string) (string, error) {
	v, err := r.client.Get(ctx, redisKey(visitID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, visitID, key, value string) error {
	return r.client.Set(ctx, redisKey(visitID, key), value, r.ttl).Err()
}

func (r *Redis) Clear(ctx context.Context, visitID string, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = redisKey(visitID, k)
	}
	return r.client.Del(ctx, full...).Err()
}
