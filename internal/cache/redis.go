package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/achoumais/achoumais/internal/config"
)

// RedisClient wraps the go-redis client with the helpers this service needs.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client from config.
func NewRedisClient(cfg *config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// LPush prepends values to a list.
func (r *RedisClient) LPush(ctx context.Context, key string, values ...string) error {
	return r.client.LPush(ctx, key, values).Err()
}

// RPopCount pops up to count values from the tail of a list.
func (r *RedisClient) RPopCount(ctx context.Context, key string, count int) ([]string, error) {
	vals, err := r.client.RPopCount(ctx, key, count).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return vals, err
}

// Ping checks the connection.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// LLen returns the length of a list.
func (r *RedisClient) LLen(ctx context.Context, key string) (int64, error) {
	return r.client.LLen(ctx, key).Result()
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
