package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func tileKey(source string, addr domain.TileAddress, timestamp int64) string {
	return fmt.Sprintf("tile:%s:%d:%d:%d:%d", source, timestamp, addr.Zoom, addr.Col, addr.Row)
}

func (r *cacheRepository) GetTile(ctx context.Context, source string, addr domain.TileAddress, timestamp int64) ([]byte, error) {
	return r.get(ctx, tileKey(source, addr, timestamp))
}

func (r *cacheRepository) SetTile(ctx context.Context, source string, addr domain.TileAddress, timestamp int64, data []byte, ttl time.Duration) error {
	return r.set(ctx, tileKey(source, addr, timestamp), data, ttl)
}
