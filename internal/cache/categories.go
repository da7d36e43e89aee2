// Package cache holds the short-TTL category lookup cache used to translate a
// human-facing category identifier (slug, name, or id) into the backing
// store's category id.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/stitchwear/storefront/internal/domain"
	"github.com/stitchwear/storefront/pkg/slug"
)

// DefaultTTL is how long a populated category map stays valid.
const DefaultTTL = 5 * time.Minute

var (
	categoryCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_category_cache_hits_total",
		Help: "Category id lookups served from the cached map",
	})
	categoryCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_category_cache_misses_total",
		Help: "Category id lookups that required a cache rebuild",
	})
)

// Loader fetches the full category list used to rebuild the cached map.
type Loader func(ctx context.Context) ([]domain.Category, error)

// CategoryCache resolves category identifiers through a lazily rebuilt map
// with a fixed TTL. Concurrent misses share one underlying load via
// singleflight. The clock is injected so tests control time.
type CategoryCache struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	byKey   map[string]string
	expires time.Time
}

// NewCategoryCache creates a cache over the given loader with DefaultTTL and
// the wall clock.
func NewCategoryCache(loader Loader) *CategoryCache {
	return NewCategoryCacheWithClock(loader, DefaultTTL, time.Now)
}

// NewCategoryCacheWithClock creates a cache with an explicit TTL and clock.
func NewCategoryCacheWithClock(loader Loader, ttl time.Duration, clock func() time.Time) *CategoryCache {
	return &CategoryCache{
		loader: loader,
		ttl:    ttl,
		clock:  clock,
	}
}

// Resolve translates a category identifier (id, slug, or name, matched
// case-insensitively) into the backing-store category id. The second return
// is false on lookup miss, which callers must treat as a valid empty result,
// not an error.
func (c *CategoryCache) Resolve(ctx context.Context, identifier string) (string, bool, error) {
	key := normalizeKey(identifier)
	if key == "" {
		return "", false, nil
	}

	c.mu.RLock()
	fresh := c.byKey != nil && c.clock().Before(c.expires)
	if fresh {
		id, ok := c.byKey[key]
		c.mu.RUnlock()
		categoryCacheHits.Inc()
		return id, ok, nil
	}
	c.mu.RUnlock()

	categoryCacheMisses.Inc()
	if err := c.rebuild(ctx); err != nil {
		return "", false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byKey[key]
	return id, ok, nil
}

// Invalidate discards the cached map; the next Resolve rebuilds it.
func (c *CategoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byKey = nil
	c.expires = time.Time{}
}

// rebuild repopulates the map. Concurrent callers share one loader call.
func (c *CategoryCache) rebuild(ctx context.Context) error {
	_, err, _ := c.group.Do("rebuild", func() (any, error) {
		// Another caller may have finished the rebuild while this one waited.
		c.mu.RLock()
		fresh := c.byKey != nil && c.clock().Before(c.expires)
		c.mu.RUnlock()
		if fresh {
			return nil, nil
		}

		categories, err := c.loader(ctx)
		if err != nil {
			return nil, err
		}

		byKey := make(map[string]string, len(categories)*3)
		for _, cat := range categories {
			byKey[normalizeKey(cat.ID)] = cat.ID
			byKey[normalizeKey(cat.Slug)] = cat.ID
			byKey[normalizeKey(cat.Name)] = cat.ID
			byKey[slug.Generate(cat.Name)] = cat.ID
		}
		delete(byKey, "")

		c.mu.Lock()
		c.byKey = byKey
		c.expires = c.clock().Add(c.ttl)
		c.mu.Unlock()
		return nil, nil
	})
	return err
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
