package repository

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/fund-report/internal/metrics"
	"github.com/yourusername/fund-report/internal/models"
)

const snapshotKey = "records"

// CachedRecordRepository keeps the last loaded snapshot for a TTL. Callers
// always receive their own copy of the slice.
type CachedRecordRepository struct {
	inner RecordRepository
	cache *cache.Cache
	ttl   time.Duration

	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewCachedRecordRepository wraps inner with a snapshot cache
func NewCachedRecordRepository(inner RecordRepository, ttl time.Duration) *CachedRecordRepository {
	return &CachedRecordRepository{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// LoadRecords returns the cached snapshot or loads a fresh one. Failed loads
// are not cached.
func (c *CachedRecordRepository) LoadRecords(ctx context.Context) ([]models.FundRecord, error) {
	if v, found := c.cache.Get(snapshotKey); found {
		if records, ok := v.([]models.FundRecord); ok {
			c.record(true)
			return cloneRecords(records), nil
		}
	}
	c.record(false)

	records, err := c.inner.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(snapshotKey, cloneRecords(records), c.ttl)
	return records, nil
}

// Invalidate drops the cached snapshot
func (c *CachedRecordRepository) Invalidate() {
	c.cache.Delete(snapshotKey)
}

// Ping delegates to the wrapped repository
func (c *CachedRecordRepository) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

// Name implements RecordRepository
func (c *CachedRecordRepository) Name() string { return c.inner.Name() }

// Stats returns cache statistics
func (c *CachedRecordRepository) Stats() (hits, misses uint64, hitRatio float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hitCount, c.missCount, c.hitRatio()
}

func (c *CachedRecordRepository) record(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hitCount++
	} else {
		c.missCount++
	}
	metrics.UpdateCacheHitRatio(c.hitRatio())
}

func (c *CachedRecordRepository) hitRatio() float64 {
	total := c.hitCount + c.missCount
	if total == 0 {
		return 0
	}
	return float64(c.hitCount) / float64(total)
}

func cloneRecords(records []models.FundRecord) []models.FundRecord {
	out := make([]models.FundRecord, len(records))
	copy(out, records)
	return out
}
