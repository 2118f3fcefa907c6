package arith

import (
	"container/list"
	"sync"
	"time"
)

// DefaultMaxEntries is the cache capacity used when CacheConfig leaves
// MaxEntries unset.
const DefaultMaxEntries = 128

// CacheStats reports cache effectiveness counters.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int64
}

// CacheConfig configures a Cache. The zero value gives a cache of
// DefaultMaxEntries entries that never expires them.
type CacheConfig struct {
	// MaxEntries bounds the number of cached expressions. Values below 1
	// select DefaultMaxEntries.
	MaxEntries int
	// TTL expires entries this long after insertion. Zero keeps entries
	// until evicted.
	TTL time.Duration
	// CleanupInterval is how often a background routine sweeps expired
	// entries. Zero disables the routine; expired entries are still
	// dropped lazily on lookup.
	CleanupInterval time.Duration
}

// Cache is a bounded cache of parsed expressions keyed by source text.
// Lookups refresh recency, and the least recently used entry is evicted
// when the cache is full. A Cache is safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	items     map[string]*list.Element
	evictList *list.List
	stats     CacheStats
	config    CacheConfig

	done      chan struct{}
	closeOnce sync.Once
}

// cacheEntry is one cached expression.
type cacheEntry struct {
	src    string
	expr   *Expr
	expiry time.Time // zero means no expiry
}

// NewCache creates a cache with the given configuration.
func NewCache(config CacheConfig) *Cache {
	if config.MaxEntries < 1 {
		config.MaxEntries = DefaultMaxEntries
	}
	c := &Cache{
		items:     make(map[string]*list.Element),
		evictList: list.New(),
		config:    config,
	}
	if config.CleanupInterval > 0 {
		c.done = make(chan struct{})
		go c.janitor()
	}
	return c
}

// Get retrieves the expression parsed from src, if cached.
func (c *Cache) Get(src string) (*Expr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[src]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	e := ent.Value.(*cacheEntry)
	if !e.expiry.IsZero() && time.Now().After(e.expiry) {
		c.removeElement(ent)
		c.stats.Misses++
		return nil, false
	}
	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return e.expr, true
}

// Put caches the expression parsed from src, evicting the least recently
// used entries as needed to stay within MaxEntries.
func (c *Cache) Put(src string, expr *Expr) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[src]; ok {
		c.removeElement(ent)
	}
	for len(c.items) >= c.config.MaxEntries {
		c.removeElement(c.evictList.Back())
	}
	e := &cacheEntry{src: src, expr: expr}
	if c.config.TTL > 0 {
		e.expiry = time.Now().Add(c.config.TTL)
	}
	c.items[src] = c.evictList.PushFront(e)
}

// GetOrParse returns the cached expression for src, parsing and caching it
// on a miss. Only successful parses are cached, so an erroneous input is
// re-reported on every attempt.
func (c *Cache) GetOrParse(src string) (*Expr, error) {
	if e, ok := c.Get(src); ok {
		return e, nil
	}
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	c.Put(src, e)
	return e, nil
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = int64(len(c.items))
	return s
}

// Close stops the background cleanup routine, if one is running. The cache
// remains usable after Close.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		if c.done != nil {
			close(c.done)
		}
	})
}

// removeElement drops an entry. The caller must hold mu.
func (c *Cache) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	e := ent.Value.(*cacheEntry)
	delete(c.items, e.src)
	c.stats.Evictions++
}

// janitor sweeps expired entries every CleanupInterval until Close.
func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.purgeExpired()
		}
	}
}

// purgeExpired removes every entry past its expiry.
func (c *Cache) purgeExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ent := range c.items {
		e := ent.Value.(*cacheEntry)
		if !e.expiry.IsZero() && now.After(e.expiry) {
			c.removeElement(ent)
		}
	}
}
