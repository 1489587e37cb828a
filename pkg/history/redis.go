package history

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for [RedisStore].
type RedisConfig struct {
	Addr     string // host:port, default localhost:6379
	Password string
	DB       int
	Prefix   string // Prepended to every key, default "unprecompose:"
}

// RedisStore keeps snapshots as Redis string values. Expiry is delegated to
// Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (Store, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "unprecompose:"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := RetryWithBackoff(ctx, func() error {
		return retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

// Name returns "redis".
func (s *RedisStore) Name() string { return "redis" }

// Get retrieves a snapshot. A missing or expired key is a miss.
func (s *RedisStore) Get(ctx context.Context, key string) (*Snapshot, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.prefix+key).Bytes()
		return retryable(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		_ = s.client.Del(ctx, s.prefix+key).Err()
		return nil, nil
	}
	return &snap, nil
}

// Set stores a snapshot with the given TTL. A zero ttl never expires.
func (s *RedisStore) Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return RetryWithBackoff(ctx, func() error {
		return retryable(s.client.Set(ctx, s.prefix+key, data, ttl).Err())
	})
}

// Delete removes a snapshot.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		return retryable(s.client.Del(ctx, s.prefix+key).Err())
	})
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// retryable marks network failures for retry. redis.Nil and command errors
// are returned unchanged.
func retryable(err error) error {
	var ne net.Error
	if errors.As(err, &ne) {
		return Retryable(err)
	}
	return err
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
