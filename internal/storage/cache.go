package storage

import (
	"context"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// CachedStore wraps a Store with an in-memory LRU read-through cache.
// Analyses are immutable once computed, so cached entries never go
// stale; the cache only bounds memory, it never needs TTL expiry.
type CachedStore struct {
	inner  Store
	cache  *lru.Cache[string, *Record]
	logger *logrus.Logger
}

// NewCachedStore wraps a store with an LRU cache of maxItems entries.
func NewCachedStore(inner Store, maxItems int, logger *logrus.Logger) (*CachedStore, error) {
	cache, err := lru.New[string, *Record](maxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &CachedStore{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}, nil
}

// Save writes through to the inner store and populates the cache.
func (c *CachedStore) Save(ctx context.Context, record *Record) error {
	if err := c.inner.Save(ctx, record); err != nil {
		return err
	}
	c.cache.Add(record.AnalysisID, record)
	return nil
}

// Get serves from the cache when possible, falling back to the inner
// store and caching the result.
func (c *CachedStore) Get(ctx context.Context, analysisID string) (*Record, error) {
	if rec, ok := c.cache.Get(analysisID); ok {
		c.logger.WithField("analysis_id", analysisID).Debug("Analysis cache hit")
		return rec, nil
	}

	rec, err := c.inner.Get(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	c.cache.Add(analysisID, rec)
	return rec, nil
}

// List bypasses the cache; listings need storage ordering.
func (c *CachedStore) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	return c.inner.List(ctx, limit, offset)
}

// Count bypasses the cache.
func (c *CachedStore) Count(ctx context.Context) (int64, error) {
	return c.inner.Count(ctx)
}

// Delete removes the entry from both the cache and the inner store.
func (c *CachedStore) Delete(ctx context.Context, analysisID string) error {
	c.cache.Remove(analysisID)
	return c.inner.Delete(ctx, analysisID)
}

// ExportJSON delegates to the inner store.
func (c *CachedStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return c.inner.ExportJSON(ctx, writer)
}

// Close purges the cache and closes the inner store.
func (c *CachedStore) Close() error {
	c.cache.Purge()
	return c.inner.Close()
}
