// Package scorecache is a small TTL cache for computed settlement results.
// The settlement engine is cheap but the mobile app polls the settlement view
// aggressively between score edits; caching per game absorbs the repeat reads.
//
// The cache is explicit state owned by the handlers layer: the TTL is injected,
// invalidation is an explicit call on every score write, and the settlement
// engine itself has no knowledge that the cache exists.
package scorecache

import (
	"sync"
	"time"
)

type entry struct {
	value   interface{}
	expires time.Time
}

// Cache stores settlement results keyed by game ID until they expire or are
// invalidated. Safe for concurrent use.
type Cache struct {
	ttl time.Duration
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time // injectable clock for tests
}

// New creates a Cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl: ttl,
		m:   make(map[string]entry),
		now: time.Now,
	}
}

// Get returns the cached value for the game and whether it was present and
// still fresh. Expired entries are removed on access.
func (c *Cache) Get(gameID string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.m[gameID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		// Recheck under the write lock: a Put may have raced the expiry.
		if cur, ok := c.m[gameID]; ok && c.now().After(cur.expires) {
			delete(c.m, gameID)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Put stores a value for the game, resetting its expiry.
func (c *Cache) Put(gameID string, value interface{}) {
	c.mu.Lock()
	c.m[gameID] = entry{value: value, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops the cached value for one game. Called on every score write
// so a stale settlement is never served after an edit.
func (c *Cache) Invalidate(gameID string) {
	c.mu.Lock()
	delete(c.m, gameID)
	c.mu.Unlock()
}
