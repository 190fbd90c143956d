package storage

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labsense/risk-engine/internal/domain"
)

// countingStore wraps a Store and counts inner Get calls so tests can
// observe cache hits.
type countingStore struct {
	Store
	gets int
}

func (c *countingStore) Get(ctx context.Context, analysisID string) (*Record, error) {
	c.gets++
	return c.Store.Get(ctx, analysisID)
}

func newCachedTestStore(t *testing.T) (*CachedStore, *countingStore) {
	t.Helper()

	inner := &countingStore{Store: createTestStore(t)}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cached, err := NewCachedStore(inner, 10, logger)
	require.NoError(t, err)
	return cached, inner
}

func TestCachedStore_GetServesFromCache(t *testing.T) {
	cached, inner := newCachedTestStore(t)
	defer cached.Close()

	ctx := context.Background()
	require.NoError(t, cached.Save(ctx, sampleRecord(t, "analysis-001", domain.RiskLow)))

	// Save populated the cache; neither Get should reach storage.
	for i := 0; i < 3; i++ {
		rec, err := cached.Get(ctx, "analysis-001")
		require.NoError(t, err)
		assert.Equal(t, "analysis-001", rec.AnalysisID)
	}
	assert.Zero(t, inner.gets)
}

func TestCachedStore_GetFallsThroughOnMiss(t *testing.T) {
	cached, inner := newCachedTestStore(t)
	defer cached.Close()

	ctx := context.Background()
	// Write directly to the inner store so the cache starts cold.
	require.NoError(t, inner.Store.Save(ctx, sampleRecord(t, "analysis-001", domain.RiskLow)))

	_, err := cached.Get(ctx, "analysis-001")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)

	// Second read is served from the cache.
	_, err = cached.Get(ctx, "analysis-001")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)
}

func TestCachedStore_DeleteEvicts(t *testing.T) {
	cached, inner := newCachedTestStore(t)
	defer cached.Close()

	ctx := context.Background()
	require.NoError(t, cached.Save(ctx, sampleRecord(t, "analysis-001", domain.RiskLow)))
	require.NoError(t, cached.Delete(ctx, "analysis-001"))

	_, err := cached.Get(ctx, "analysis-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, inner.gets, "deleted entry must not be served from cache")
}

func TestCachedStore_NotFoundNotCached(t *testing.T) {
	cached, _ := newCachedTestStore(t)
	defer cached.Close()

	_, err := cached.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
