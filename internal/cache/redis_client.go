package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var _ CacheManager = (*RedisClient)(nil)

// RedisClient - реализация кэша на основе Redis
type RedisClient struct {
	client     *redis.Client
	ttl        time.Duration
	keyBuilder *KeyBuilder
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	CacheTTL     int // в секундах
	Namespace    string
}

func NewRedisClient(cfg RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, NewCacheError("connect", "", fmt.Errorf("failed to connect to Redis: %w", err))
	}

	return newRedisClient(client, time.Duration(cfg.CacheTTL)*time.Second, cfg.Namespace), nil
}

func newRedisClient(client *redis.Client, ttl time.Duration, namespace string) *RedisClient {
	return &RedisClient{
		client:     client,
		ttl:        ttl,
		keyBuilder: NewKeyBuilder(namespace),
	}
}

// Set сохраняет значение в кэш с дефолтным TTL
func (r *RedisClient) Set(ctx context.Context, key string, value any) error {
	return r.SetWithTTL(ctx, key, value, r.ttl)
}

func (r *RedisClient) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return NewCacheError("set", key, ErrInvalidCacheKey)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return NewCacheError("set", key, fmt.Errorf("failed to marshal value: %w", err))
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return NewCacheError("set", key, err)
	}

	return nil
}

func (r *RedisClient) Get(ctx context.Context, key string, dest any) error {
	if key == "" {
		return NewCacheError("get", key, ErrInvalidCacheKey)
	}

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return NewCacheError("get", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return NewCacheError("get", key, fmt.Errorf("failed to unmarshal value: %w", err))
	}

	return nil
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return NewCacheError("ping", "", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	if err := r.client.Close(); err != nil {
		return NewCacheError("close", "", err)
	}
	return nil
}

// IncrementRateLimit увеличивает счетчик окна и выставляет ему TTL
func (r *RedisClient) IncrementRateLimit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()

	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, NewCacheError("increment", key, err)
	}

	return incr.Val(), nil
}

func (r *RedisClient) GetKeyBuilder() *KeyBuilder {
	return r.keyBuilder
}
