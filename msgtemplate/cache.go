package msgtemplate

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// DefaultMaxEntries is the capacity of the process-wide cache returned by
// Default.
const DefaultMaxEntries = 1024

// Cache maps raw template strings to compiled templates.
//
// The cache only grows. Once maxEntries distinct templates have been stored,
// templates that are not already cached are compiled on every call and never
// stored, so memory stays bounded without eviction churn.
//
// All methods are safe for concurrent use. Two goroutines compiling the same
// new template may both compile it; the first insertion is kept and the other
// caller still receives its own, equivalent, result.
type Cache struct {
	entries    sync.Map
	entryCount atomic.Int64
	maxEntries int64

	hits     atomic.Uint64
	misses   atomic.Uint64
	uncached atomic.Uint64
}

// NewCache returns a cache holding at most maxEntries templates.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		panic(fmt.Errorf("maxEntries must be greater than 0; got %d", maxEntries))
	}
	return &Cache{maxEntries: int64(maxEntries)}
}

var defaultCache = sync.OnceValue(func() *Cache {
	return NewCache(DefaultMaxEntries)
})

// Default returns the process-wide cache. Loggers use it unless they are given
// a cache of their own.
func Default() *Cache {
	return defaultCache()
}

// Compile returns the compiled form of raw, from the cache when possible.
func (c *Cache) Compile(raw string) *Template {
	if v, ok := c.entries.Load(raw); ok {
		c.hits.Add(1)
		return v.(*Template)
	}
	c.misses.Add(1)
	t := compile(raw)
	if !c.reserve() {
		c.uncached.Add(1)
		return t
	}
	if _, loaded := c.entries.LoadOrStore(raw, t); loaded {
		c.entryCount.Add(-1)
	}
	return t
}

// reserve claims one entry slot, failing once the cache is full.
func (c *Cache) reserve() bool {
	for {
		n := c.entryCount.Load()
		if n >= c.maxEntries {
			return false
		}
		if c.entryCount.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	return int(c.entryCount.Load())
}

// MaxEntries returns the capacity the cache was created with.
func (c *Cache) MaxEntries() int {
	return int(c.maxEntries)
}
