package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	outcomePrefix = "patrol:outcome:"
	lockPrefix    = "patrol:lock:"

	lockExpiry = 30 * time.Second
	lockTries  = 64
)

// RedisCache keeps outcomes as JSON strings and guards computation with redsync mutexes.
type RedisCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisCache initializes a RedisCache with the provided Redis client and TTL.
func NewRedisCache(client *redis.Client, ttlSeconds int) (i.ResultCache, error) {
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", ttlSeconds)
	}
	return &RedisCache{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*dmn.Outcome, bool, error) {
	raw, err := c.client.Get(ctx, outcomePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var outcome dmn.Outcome
	if err := json.Unmarshal(raw, &outcome); err != nil {
		return nil, false, fmt.Errorf("decode cached outcome: %w", err)
	}
	return &outcome, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, outcome *dmn.Outcome) error {
	raw, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, outcomePrefix+key, raw, c.ttl).Err()
}

// Lock acquires the distributed lock for key.
func (c *RedisCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(lockPrefix+key,
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(lockTries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.Unlock()
	}, nil
}
