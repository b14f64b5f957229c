package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const rankingKey = "ranking:stores"

// RankingCache holds the last computed store ranking.
type RankingCache interface {
	Get(ctx context.Context) ([]StoreRanking, bool, error)
	Set(ctx context.Context, ranking []StoreRanking) error
	Invalidate(ctx context.Context) error
}

// invalidateRanking drops the cached ranking after a write that changes it.
// Failures are logged; the entry still expires with its ttl.
func invalidateRanking(ctx context.Context, c RankingCache, log logrus.FieldLogger) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx); err != nil {
		if log == nil {
			log = logrus.StandardLogger()
		}
		log.WithError(err).Warn("ranking cache invalidate failed")
	}
}

type RedisRankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRankingCache(client *redis.Client, ttl time.Duration) *RedisRankingCache {
	return &RedisRankingCache{client: client, ttl: ttl}
}

func (c *RedisRankingCache) Get(ctx context.Context) ([]StoreRanking, bool, error) {
	raw, err := c.client.Get(ctx, rankingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var ranking []StoreRanking
	if err := json.Unmarshal(raw, &ranking); err != nil {
		return nil, false, err
	}
	return ranking, true, nil
}

func (c *RedisRankingCache) Set(ctx context.Context, ranking []StoreRanking) error {
	raw, err := json.Marshal(ranking)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, rankingKey, raw, c.ttl).Err()
}

func (c *RedisRankingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, rankingKey).Err()
}

type MemoryRankingCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	ranking []StoreRanking
	expires time.Time
	now     func() time.Time
}

func NewMemoryRankingCache(ttl time.Duration) *MemoryRankingCache {
	return &MemoryRankingCache{ttl: ttl, now: time.Now}
}

func (c *MemoryRankingCache) Get(context.Context) ([]StoreRanking, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ranking == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	out := make([]StoreRanking, len(c.ranking))
	copy(out, c.ranking)
	return out, true, nil
}

func (c *MemoryRankingCache) Set(_ context.Context, ranking []StoreRanking) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ranking = make([]StoreRanking, len(ranking))
	copy(c.ranking, ranking)
	c.expires = c.now().Add(c.ttl)
	return nil
}

func (c *MemoryRankingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ranking = nil
	return nil
}
