package quran

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value   any
	addedAt time.Time
}

// cache is a small TTL map. Reads past the TTL miss, inserts beyond
// the cap evict the oldest entry.
type cache struct {
	mutex   sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	max     int
}

func newCache(ttl time.Duration, max int) *cache {
	return &cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		max:     max,
	}
}

func (c *cache) get(key string) (any, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if time.Since(entry.addedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return entry.value, true
}

func (c *cache) put(key string, value any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(c.entries) >= c.max {
		if _, exists := c.entries[key]; !exists {
			c.evictOldest()
		}
	}

	c.entries[key] = cacheEntry{value: value, addedAt: time.Now()}
}

func (c *cache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.addedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.addedAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *cache) len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}
