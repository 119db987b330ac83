package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jayeshk55/CredLink-sub000/pkg/logger"
)

// RedisStore keeps entries in redis so multiple replicas share one staleness
// window. Same contract as MemoryStore: miss → compute → SET with TTL, and a
// compute failure stores nothing.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore { return &RedisStore{client: client} }

func (s *RedisStore) GetOrCompute(ctx context.Context, namespace, key string, ttl time.Duration, compute func(context.Context) ([]byte, error)) ([]byte, error) {
	k := cacheKey(namespace, key)
	data, err := s.client.Get(ctx, k).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		// redis 不可用时退化为直算，不让缓存故障放大成请求失败
		logger.Warn("cache read failed, computing directly", zap.String("key", k), zap.Error(err))
	}

	payload, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, k, payload, ttl).Err(); err != nil {
		logger.Warn("cache write failed", zap.String("key", k), zap.Error(err))
	}
	return payload, nil
}

func (s *RedisStore) Invalidate(ctx context.Context, namespace, key string) error {
	return s.client.Del(ctx, cacheKey(namespace, key)).Err()
}
