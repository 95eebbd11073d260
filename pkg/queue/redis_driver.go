package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisJobList = "showroom:queue:jobs"
	redisPopWait = 5 * time.Second
)

// RedisDriver stores jobs in a Redis list so they survive restarts.
// Producers LPUSH, workers BRPOP.
type RedisDriver struct {
	rdb *redis.Client
}

// NewRedisDriver wraps an existing client, normally the one pkg/cache opened.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	return &RedisDriver{rdb: rdb}
}

func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(context.Background(), redisJobList, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks up to redisPopWait. A nil, nil return means the wait timed out
// with nothing queued.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	res, err := d.rdb.BRPop(ctx, redisPopWait, redisJobList).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}
