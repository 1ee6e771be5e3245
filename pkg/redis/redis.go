package redis

import (
	"context"
	"errors"
	"time"

	"familykarting/pkg/config"

	"github.com/redis/go-redis/v9"
)

// ErrNil is returned by Get when the key doesn't exist.
var ErrNil = redis.Nil

// Type for the client.
type RedisClient struct {
	*redis.Client
}

// NewClient creates the client and checks the connection.
func NewClient(ctx context.Context, cfg *config.Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   3,
		PoolSize:     20,
		MinIdleConns: 2,
		PoolTimeout:  30 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisClient{Client: client}, nil
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Wrapper to return the Result directly.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.Client.Get(ctx, key).Result()
}

// Wrapper to already return the .Err()
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

// Del removes the keys, missing keys are ignored.
func (r *RedisClient) Del(ctx context.Context, keys ...string) error {
	return r.Client.Del(ctx, keys...).Err()
}

// IsNil tells if the error is a missing key.
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
