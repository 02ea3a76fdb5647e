package cache

import (
	"context"
	"time"

	"cublex/internal/platform/config"
	"cublex/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis dials Redis and leaves RDB nil when it cannot be reached, in
// which case callers fall back to in-process stores.
func ConnectRedis() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		logger.Log.Warn().Err(err).Str("addr", config.AppConfig.RedisAddr).Msg("Redis not available, using memory stores")
		client.Close()
		return
	}
	RDB = client
	logger.Log.Info().Str("addr", config.AppConfig.RedisAddr).Msg("Successfully connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		logger.Log.Info().Msg("Redis connection closed")
	}
}

// Status reports the Redis mode for the health endpoint.
func Status(ctx context.Context) string {
	if RDB == nil {
		return "memory-store"
	}
	if err := RDB.Ping(ctx).Err(); err != nil {
		return "unavailable"
	}
	return "connected"
}
