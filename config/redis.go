package config

import (
	"os"

	"PitchPerfect/services/redis"

	log "github.com/sirupsen/logrus"
)

// ConnectRedis connects the vote-results cache using REDIS_URL.
func ConnectRedis() (*redis.RedisClient, error) {
	redisURI := os.Getenv("REDIS_URL")
	if redisURI == "" {
		redisURI = "localhost:6379"
	}
	redisClient, err := redis.InitRedis(redisURI, 0)
	if err != nil {
		log.Errorf("Error connecting to Redis: %v", err)
		return nil, err
	}
	log.Info("Redis connection established")
	return redisClient, nil
}
