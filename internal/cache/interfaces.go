package cache

import (
	"context"
	"time"
)

// Cache - основной интерфейс для работы с кэшем
type Cache interface {
	Set(ctx context.Context, key string, value any) error
	Get(ctx context.Context, key string, dest any) error

	HealthCheck(ctx context.Context) error
	Close() error
}

// RateLimiter - счетчик запросов в скользящем окне
type RateLimiter interface {
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// CacheManager - полный интерфейс кэша
type CacheManager interface {
	Cache
	RateLimiter
}

// NullCache - заглушка для работы без Redis
type NullCache struct{}

var _ CacheManager = (*NullCache)(nil)

func NewNullCache() *NullCache {
	return &NullCache{}
}

func (n *NullCache) Set(ctx context.Context, key string, value any) error {
	return nil
}

func (n *NullCache) Get(ctx context.Context, key string, dest any) error {
	return ErrCacheMiss
}

// IncrementRateLimit без Redis не ограничивает запросы
func (n *NullCache) IncrementRateLimit(ctx context.Context, key string, window time.Duration) (int64, error) {
	return 0, nil
}

func (n *NullCache) HealthCheck(ctx context.Context) error {
	return nil
}

func (n *NullCache) Close() error {
	return nil
}
