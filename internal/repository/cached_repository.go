package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"inventory-catalog/internal/cache"
	"inventory-catalog/internal/domain"

	"go.uber.org/zap"
)

// CachedItemRepository serves FindByID from a cache and invalidates on every write.
// Listing, searching and uniqueness checks always go to the underlying store.
//
// generation counts invalidations. A store read only fills the cache if no write
// was invalidated while it ran; mu makes that check and the fill one step with
// respect to invalidate.
type CachedItemRepository struct {
	ItemRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
}

func NewCachedItemRepository(next ItemRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedItemRepository {
	return &CachedItemRepository{
		ItemRepository: next,
		cache:          c,
		ttl:            ttl,
		logger:         logger,
	}
}

func itemCacheKey(id int64) string {
	return fmt.Sprintf("item:%d", id)
}

func (r *CachedItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	key := itemCacheKey(id)

	var cached domain.Item
	if err := cache.GetJSON(ctx, r.cache, key, &cached); err == nil {
		r.logger.Debug("Cache hit", zap.String("key", key))
		return &cached, nil
	}

	readGeneration := r.currentGeneration()

	item, err := r.ItemRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.fill(ctx, key, item, readGeneration)
	return item, nil
}

func (r *CachedItemRepository) currentGeneration() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// fill drops the value when a write landed after the store read began
func (r *CachedItemRepository) fill(ctx context.Context, key string, item *domain.Item, readGeneration uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation != readGeneration {
		r.logger.Debug("Skipping cache fill after concurrent write", zap.String("key", key))
		return
	}
	if err := cache.SetJSON(ctx, r.cache, key, item, r.ttl); err != nil {
		r.logger.Warn("Failed to cache item", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	saved, err := r.ItemRepository.Save(ctx, item)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, saved.ID)
	return saved, nil
}

func (r *CachedItemRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.ItemRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedItemRepository) invalidate(ctx context.Context, id int64) {
	key := itemCacheKey(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	if err := r.cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Failed to invalidate cached item", zap.String("key", key), zap.Error(err))
	}
}
