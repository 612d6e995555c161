package session

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisStorage is a Storage backed by Redis strings
type RedisStorage struct {
	rdb *redis.Client
}

// NewRedisStorage creates a RedisStorage using the given client
func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

// Get implements the Storage interface
func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

// Set implements the Storage interface
func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

// Del implements the Storage interface
func (r *RedisStorage) Del(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}
