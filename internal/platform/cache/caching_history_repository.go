// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chili_backend/internal/feature/history/domain/entity"
	"chili_backend/internal/feature/history/usecase"
)

// CachingHistoryRepository decorates a HistoryRepository with Redis caching.
// List results are cached under a single namespace key; every successful write
// invalidates it, so readers see their own writes. Cache failures are best
// effort and never fail the underlying operation.
type CachingHistoryRepository struct {
	inner     usecase.HistoryRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.HistoryRepository = (*CachingHistoryRepository)(nil)

// NewCachingHistoryRepository decorates a HistoryRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "history".
// A nil Redis client disables caching entirely.
func NewCachingHistoryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.HistoryRepository, namespace string) *CachingHistoryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "history"
	}
	return &CachingHistoryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// listKey returns the cache key holding the full history listing.
func (c *CachingHistoryRepository) listKey() string {
	return fmt.Sprintf("%s:all", c.namespace)
}

// Create inserts a record and invalidates the cached listing.
func (c *CachingHistoryRepository) Create(ctx context.Context, h *entity.History) error {
	if err := c.inner.Create(ctx, h); err != nil {
		return err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.listKey()).Err() // Best effort
	}
	return nil
}

// FindAll retrieves the listing, checking the cache first then falling back
// to the database.
func (c *CachingHistoryRepository) FindAll(ctx context.Context) ([]entity.History, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.History
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// DeleteByID deletes a record and invalidates the cached listing.
// When the inner repository reports not-found, nothing changed and the
// cache is left alone.
func (c *CachingHistoryRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := c.inner.DeleteByID(ctx, id); err != nil {
		return err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.listKey()).Err() // Best effort
	}
	return nil
}
