package msgtemplate

// Stats represents cache stats.
//
// Use [Cache.UpdateStats] for obtaining fresh stats from the cache.
type Stats struct {
	// Compiles is the number of Compile calls.
	Compiles uint64

	// Hits is the number of Compile calls served from the cache.
	Hits uint64

	// Misses is the number of Compile calls that had to compile.
	Misses uint64

	// Uncached is the number of misses that were not stored because the
	// cache was full.
	Uncached uint64

	// EntriesCount is the current number of cached templates.
	EntriesCount uint64

	// MaxEntries is the maximum number of templates the cache stores.
	MaxEntries uint64
}

// UpdateStats adds cache stats to s.
//
// Call [Stats.Reset] before calling UpdateStats if s is re-used.
func (c *Cache) UpdateStats(s *Stats) {
	hits := c.hits.Load()
	misses := c.misses.Load()
	s.Hits += hits
	s.Misses += misses
	s.Compiles += hits + misses
	s.Uncached += c.uncached.Load()
	s.EntriesCount = uint64(c.entryCount.Load())
	s.MaxEntries = uint64(c.maxEntries)
}

// Reset resets s, so it may be re-used again in [Cache.UpdateStats].
func (s *Stats) Reset() {
	*s = Stats{}
}
