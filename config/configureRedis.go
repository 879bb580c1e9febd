package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisOptions is shared by the batch store client and the asynq queue.
func RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     GetEnvDefault("REDIS_ADDRESS", "localhost:6379"),
		Password: GetEnv("REDIS_PASSWORD"),
		DB:       GetEnvInt("REDIS_DB", 0),
	}
}

func InitRedisServer(ctx context.Context) *redis.Client {
	client := redis.NewClient(RedisOptions())

	_, err := client.Ping(ctx).Result()
	if err != nil {
		panic(err)
	}

	return client
}
