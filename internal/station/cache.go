// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package station

import (
	"context"
	"sync"
	"time"
)

type cacheKey struct {
	Provider string
	ID       string
}

type cacheEntry struct {
	Info   Info
	Expiry time.Time
}

// CachedLookup caches station details of a Lookup. Unknown stations are cached as well, with
// their own TTL.
type CachedLookup struct {
	lookup  Lookup
	ttlHit  time.Duration
	ttlMiss time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedLookup(lookup Lookup, ttlHit, ttlMiss time.Duration) *CachedLookup {
	return &CachedLookup{
		lookup:  lookup,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedLookup) Name() string {
	return "station cache using " + c.lookup.Name()
}

// Lookup returns the details of the given stations. Only stations without a valid cache entry
// are requested from the underlying Lookup.
func (c *CachedLookup) Lookup(ctx context.Context, ids []string) (map[string]Info, error) {
	ids = Normalize(ids)
	result := make(map[string]Info, len(ids))
	missing := make([]string, 0, len(ids))

	now := time.Now()
	c.mu.RLock()
	for _, id := range ids {
		entry, ok := c.cache[cacheKey{Provider: c.lookup.Name(), ID: id}]
		if ok && now.Before(entry.Expiry) {
			info := entry.Info
			info.CacheHit = true
			result[id] = info
			continue
		}
		missing = append(missing, id)
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return result, nil
	}

	fetched, err := c.lookup.Lookup(ctx, missing)
	if err != nil {
		return result, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now = time.Now()
	for _, id := range missing {
		info, ok := fetched[id]
		if !ok {
			info = Info{ID: id}
		}
		ttl := c.ttlHit
		if !info.Found {
			ttl = c.ttlMiss
		}
		c.cache[cacheKey{Provider: c.lookup.Name(), ID: id}] = cacheEntry{
			Info:   info,
			Expiry: now.Add(ttl),
		}
		result[id] = info
	}

	return result, nil
}
