// Package cache - memoization справочников с TTL поверх CacheRepositoryInterface.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"asset-tracker/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 300 * time.Second

type Cache struct {
	repo   repositories.CacheRepositoryInterface
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

func New(repo repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		repo:        repo,
		ttl:         ttl,
		logger:      logger.Named("cache"),
		generations: make(map[string]uint64),
	}
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// Remember отдаёт значение из кеша или вызывает load и кеширует результат на TTL.
// Одновременные промахи по одному ключу выполняют load один раз.
// Ошибки самого кеша не мешают чтению: значение просто загружается заново.
func Remember[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	raw, err := c.repo.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v, nil
		}
		c.logger.Warn("Повреждённое значение в кеше", zap.String("key", key))
	case !errors.Is(err, repositories.ErrCacheMiss):
		c.logger.Warn("Кеш недоступен", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		gen := c.generation(key)
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}

		// Если ключ сбросили во время загрузки, результат может быть устаревшим.
		if c.generation(key) != gen {
			return val, nil
		}
		data, err := json.Marshal(val)
		if err != nil {
			c.logger.Warn("Не удалось сериализовать значение для кеша", zap.String("key", key), zap.Error(err))
			return val, nil
		}
		if err := c.repo.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("Не удалось записать в кеш", zap.String("key", key), zap.Error(err))
		}
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Invalidate сбрасывает ключи до возврата управления.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		c.generations[k]++
	}
	c.mu.Unlock()

	for _, k := range keys {
		c.group.Forget(k)
	}
	if err := c.repo.Del(ctx, keys...); err != nil {
		c.logger.Error("Не удалось сбросить кеш", zap.Strings("keys", keys), zap.Error(err))
		return err
	}
	c.logger.Debug("Кеш сброшен", zap.Strings("keys", keys))
	return nil
}
