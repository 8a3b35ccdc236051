package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/pkg/logger"
	"github.com/d60-Lab/postwatch/pkg/metrics"
)

// CachedCategoryRepository 在 CategoryRepository 外包一层 Redis 旁路缓存。
// 分类创建后不再修改，按 id 缓存不会读到旧数据；缓存异常时直接回源。
type CachedCategoryRepository struct {
	CategoryRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedCategoryRepository cache 为 nil 时直接返回 inner
func NewCachedCategoryRepository(inner CategoryRepository, cache *redis.Client, ttl time.Duration) CategoryRepository {
	if cache == nil {
		return inner
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedCategoryRepository{CategoryRepository: inner, cache: cache, ttl: ttl}
}

func categoryKey(id string) string { return fmt.Sprintf("category:%s", id) }

func (r *CachedCategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	key := categoryKey(id)
	if data, err := r.cache.Get(ctx, key).Bytes(); err == nil {
		var c model.Category
		if uErr := json.Unmarshal(data, &c); uErr == nil {
			metrics.CategoryCacheLookups.WithLabelValues("hit").Inc()
			return &c, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("category cache get failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CategoryCacheLookups.WithLabelValues("miss").Inc()

	c, err := r.CategoryRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(c); err == nil {
		if err := r.cache.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			logger.Warn("category cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return c, nil
}
