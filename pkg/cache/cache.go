// Package cache wraps a Redis client with JSON marshalling helpers.
// Construct a Store once at startup and pass it to the services that
// cache query results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache: miss")

type Store struct {
	rdb *redis.Client
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr, password string) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

// New wraps an existing client. Used by tests with miniature setups.
func New(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

// Client exposes the underlying Redis client for callers that need
// primitives beyond Get/Set, such as the queue driver.
func (s *Store) Client() *redis.Client { return s.rdb }

// Get unmarshals the value at key into dest. Returns ErrMiss when absent.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache: get %s: %w", key, err)
	}
	return json.Unmarshal(raw, dest)
}

// Set stores value as JSON with the given TTL. A zero TTL means no expiry.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return s.rdb.Set(ctx, key, raw, ttl).Err()
}

// Del removes the given keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// DelPattern removes all keys matching the glob pattern. Used to drop a
// whole cache namespace after a write (for example catalog:*).
func (s *Store) DelPattern(ctx context.Context, pattern string) error {
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return s.Del(ctx, keys...)
}

// Close releases the client.
func (s *Store) Close() error { return s.rdb.Close() }
