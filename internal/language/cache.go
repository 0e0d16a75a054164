package language

import "sync"

// Cache maps (target language, source text) to a translation and the source
// language it was translated from. Entries are never evicted, so memory grows
// with the number of distinct texts; the set of UI strings and feedback
// sentences in practice is small.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
}

type cacheKey struct {
	lang string
	text string
}

type cacheEntry struct {
	translated string
	source     string
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]cacheEntry)}
}

// Get returns the cached translation of text into lang and the source
// language recorded with it. The source is empty when it was never known.
func (c *Cache) Get(lang, text string) (translated, source string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[cacheKey{lang, text}]
	return e.translated, e.source, ok
}

// Put stores a translation. A concurrent Put for the same key wins last.
func (c *Cache) Put(lang, text, translated, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{lang, text}] = cacheEntry{translated: translated, source: source}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
