package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platinummonkey/doclint/pkg/lint"
)

// ErrCacheMiss reports that a key has no live entry.
var ErrCacheMiss = errors.New("cache miss")

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
	ItemCount int64   `json:"item_count"`
}

// ResultCache memoizes per-file reports in an expiring LRU. Safe for
// concurrent use by the runner's workers.
type ResultCache struct {
	entries *lru.LRU[string, []lint.Report]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewResultCache creates a result cache holding up to maxEntries entries
// for at most ttl each. Sizes below 10 and non-positive TTLs fall back to
// usable values rather than erroring.
func NewResultCache(maxEntries int, ttl time.Duration) *ResultCache {
	if maxEntries < 10 {
		maxEntries = 10
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &ResultCache{
		entries: lru.NewLRU[string, []lint.Report](maxEntries, nil, ttl),
	}
}

// Get retrieves cached reports for key.
func (c *ResultCache) Get(key string) ([]lint.Report, error) {
	reports, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}

	c.hits.Add(1)
	return reports, nil
}

// Set stores reports under key.
func (c *ResultCache) Set(key string, reports []lint.Report) {
	c.entries.Add(key, reports)
}

// Purge removes every cached entry. Hit/miss counters keep counting across
// purges.
func (c *ResultCache) Purge() {
	c.entries.Purge()
}

// Stats snapshots the counters.
func (c *ResultCache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	stats := CacheStats{
		Hits:      hits,
		Misses:    misses,
		ItemCount: int64(c.entries.Len()),
	}
	if lookups := hits + misses; lookups > 0 {
		stats.HitRate = float64(hits) / float64(lookups)
	}
	return stats
}

// cacheKey builds the deterministic per-file key, keyed so that a change
// to the file content, the bound options, or the checker itself misses:
// {path}:{sha256(content)}:{optionFingerprint}:{checkerVersion}.
func cacheKey(path string, content []byte, fingerprint, checkerVersion string) string {
	sum := sha256.Sum256(content)
	return path + ":" + hex.EncodeToString(sum[:]) + ":" + fingerprint + ":" + checkerVersion
}
