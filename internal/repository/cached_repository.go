package repository

import (
	"context"
	"errors"

	"github.com/Kosench/linkpulse/internal/cache"
	"github.com/Kosench/linkpulse/internal/logging"
	"github.com/Kosench/linkpulse/internal/metrics"
	"github.com/Kosench/linkpulse/internal/model"
)

// CachedLinkRepository - чтение ссылок через Redis
//
// В кэш попадают только найденные ссылки. Статус и срок действия
// проверяются по закэшированной копии, поэтому изменения ссылки
// становятся видны после истечения TTL.
type CachedLinkRepository struct {
	next  LinkRepository
	cache cache.Cache
	keys  *cache.KeyBuilder
}

func NewCachedLinkRepository(next LinkRepository, c cache.Cache, keys *cache.KeyBuilder) *CachedLinkRepository {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keys == nil {
		keys = cache.DefaultKeyBuilder
	}

	return &CachedLinkRepository{
		next:  next,
		cache: c,
		keys:  keys,
	}
}

func (r *CachedLinkRepository) GetByShortCode(ctx context.Context, shortCode string) (*model.Link, error) {
	cacheKey := r.keys.Link(shortCode)

	var cached model.Link
	err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		metrics.RecordLinkCache("hit")
		return &cached, nil
	}

	if errors.Is(err, cache.ErrCacheMiss) {
		metrics.RecordLinkCache("miss")
	} else {
		// ошибка кэша не должна ронять редирект
		metrics.RecordLinkCache("error")
		logging.Ctx(ctx).Warn().Err(err).Str("short_code", shortCode).Msg("link cache read failed")
	}

	link, err := r.next.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, link); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("short_code", shortCode).Msg("failed to cache link")
	}

	return link, nil
}
