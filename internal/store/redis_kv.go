package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ustat/internal/domain"
)

// DefaultRedisPrefix namespaces keys when no profile is given.
const DefaultRedisPrefix = "ustat:default:"

// RedisKV stores keys in Redis under a fixed prefix, so several hosts (or
// profiles) can share one session.
type RedisKV struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisKV wraps an existing client.
func NewRedisKV(client redis.UniversalClient, prefix string) *RedisKV {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisKV{client: client, prefix: prefix}
}

// NewRedisClient configures a Redis client from url without connecting.
func NewRedisClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

// Ping checks that the server answers.
func (s *RedisKV) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return &domain.StorageError{Op: "ping", Err: err}
	}
	return nil
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	return v, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *RedisKV) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

var _ domain.KV = (*RedisKV)(nil)
