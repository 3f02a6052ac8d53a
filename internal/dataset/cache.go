package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/rongwang/nyayadrishti/internal/metrics"
)

// DefaultTTL is how long a loaded set of tables is served before reloading
const DefaultTTL = time.Hour

// Datasets is one cleaned and merged load. Callers must treat the tables as
// read-only; they are shared across requests.
type Datasets struct {
	Cases    *Table
	Hearings *Table
	Merged   *Table
	LoadedAt time.Time
}

// Loader produces a fresh Datasets value
type Loader func(ctx context.Context) (*Datasets, error)

// Cache is a read-through cache over a Loader with a time-to-live and an
// explicit invalidation hook
type Cache struct {
	load Loader
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	current *Datasets
	expires time.Time
}

// NewCache creates a cache. A ttl <= 0 uses DefaultTTL.
func NewCache(load Loader, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{load: load, ttl: ttl, now: time.Now}
}

// Get returns the cached datasets, loading them when the cache is empty or
// stale. Concurrent callers wait for a single load. A failed load is not
// cached.
func (c *Cache) Get(ctx context.Context) (*Datasets, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.now().Before(c.expires) {
		metrics.RecordCacheLookup(true)
		return c.current, nil
	}
	metrics.RecordCacheLookup(false)

	ds, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.current = ds
	c.expires = c.now().Add(c.ttl)
	return ds, nil
}

// Invalidate drops the cached value so the next Get reloads
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
