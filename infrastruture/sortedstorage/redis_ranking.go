package sortedstorage

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/redis/go-redis/v9"
)

const rankingPrefix = "patrol:ranking:"

// RedisRanking keeps one sorted set of result IDs per map, scored by risk reduction.
type RedisRanking struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRanking initializes a RedisRanking with the provided Redis client and TTL.
// A set expires ttlSeconds after its last member was added.
func NewRedisRanking(client *redis.Client, ttlSeconds int) (i.ResultRanking, error) {
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("ranking ttl must be positive, got %d", ttlSeconds)
	}
	return &RedisRanking{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Add adds a result to the ranking of mapID and refreshes the set's expiration.
func (r *RedisRanking) Add(ctx context.Context, mapID string, score float64, resultID string) error {
	key := rankingPrefix + mapID
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: resultID})
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	return err
}

// Top returns up to n result IDs with the highest scores.
func (r *RedisRanking) Top(ctx context.Context, mapID string, n int64) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	return r.client.ZRevRange(ctx, rankingPrefix+mapID, 0, n-1).Result()
}
