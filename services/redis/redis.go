package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultsTTL bounds how stale a cached tally may get. Writes invalidate the
// key anyway; the TTL only covers invalidation failures.
const ResultsTTL = 30 * time.Second

// RedisClient handles Redis operations for the vote-results cache.
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance. Addr may be a plain
// host:port or a full redis:// URL (remote deployments).
func NewRedisClient(addr string, db int) (*RedisClient, error) {
	var client *redis.Client
	if opt, err := redis.ParseURL(addr); err == nil {
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}, nil
}

// GetCachedResults loads a cached tally payload into dest. The second return
// is false on a cache miss.
func (rc *RedisClient) GetCachedResults(key string, dest any) (bool, error) {
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error getting cached results: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("error unmarshaling cached results: %w", err)
	}
	return true, nil
}

// SetCachedResults stores a tally payload under key with the standard TTL.
func (rc *RedisClient) SetCachedResults(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshaling results: %w", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, ResultsTTL).Err()
}

// InvalidateResults drops cached tallies after a write touches their scope.
func (rc *RedisClient) InvalidateResults(keys ...string) error {
	for _, key := range keys {
		if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to invalidate key %s: %w", key, err)
		}
	}
	return nil
}
