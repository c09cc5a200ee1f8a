package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultEntryPrefix   = "payroll:cache:"
	defaultVersionPrefix = "payroll:version:"
)

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisStore shares cached results between API instances
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, keyPrefix: defaultEntryPrefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return raw, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// RedisVersions stores counters with INCR so bumps from concurrent
// instances never collide. The stored value is the number of bumps;
// the reported version is that plus one.
type RedisVersions struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisVersions(client *redis.Client) *RedisVersions {
	return &RedisVersions{client: client, keyPrefix: defaultVersionPrefix}
}

func (v *RedisVersions) Version(ctx context.Context, scope string) (int64, error) {
	bumps, err := v.client.Get(ctx, v.keyPrefix+scope).Int64()
	if errors.Is(err, redis.Nil) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get version: %w", err)
	}
	return bumps + 1, nil
}

func (v *RedisVersions) Bump(ctx context.Context, scope string) (int64, error) {
	bumps, err := v.client.Incr(ctx, v.keyPrefix+scope).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr version: %w", err)
	}
	return bumps + 1, nil
}
