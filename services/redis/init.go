package redis

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// InitRedis initializes the Redis connection and verifies it with a ping.
func InitRedis(addr string, db int) (*RedisClient, error) {
	rc, err := NewRedisClient(addr, db)
	if err != nil {
		return nil, err
	}

	if err := rc.Client.Ping(rc.Ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Successfully connected to Redis")
	return rc, nil
}

// CloseRedis gracefully closes the Redis connection.
func CloseRedis(rc *RedisClient) error {
	if err := rc.Client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %w", err)
	}
	return nil
}
