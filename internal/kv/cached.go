package kv

import (
	"context"
	"sync"

	"github.com/coocood/freecache"
)

// Cached keeps recently read or written blobs in memory in front of another
// Store. Writes go through to the underlying store first; the cache is only
// refreshed once the write succeeded.
//
// Each key carries a generation that every Set and Delete bumps. A read that
// missed the cache only fills it when no write to the key finished while the
// read was in flight, so a slow read can never park a stale blob in front of
// a newer one.
type Cached struct {
	next  Store
	cache *freecache.Cache

	mu   sync.Mutex
	gens map[string]uint64
}

var _ Store = (*Cached)(nil)

// NewCached wraps next with a cache of sizeMB megabytes. freecache enforces a
// 512KB minimum.
func NewCached(next Store, sizeMB int) *Cached {
	megabyte := 1024 * 1024
	return &Cached{
		next:  next,
		cache: freecache.NewCache(sizeMB * megabyte),
		gens:  make(map[string]uint64),
	}
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if value, err := c.cache.Get([]byte(key)); err == nil {
		return value, true, nil
	}

	c.mu.Lock()
	gen := c.gens[key]
	c.mu.Unlock()

	value, found, err := c.next.Get(ctx, key)
	if err != nil || !found {
		return value, found, err
	}

	c.mu.Lock()
	if c.gens[key] == gen {
		// Blobs too large for the cache are simply not cached.
		_ = c.cache.Set([]byte(key), value, 0)
	}
	c.mu.Unlock()
	return value, true, nil
}

func (c *Cached) Set(ctx context.Context, key string, value []byte) error {
	err := c.next.Set(ctx, key, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	if err != nil {
		c.cache.Del([]byte(key))
		return err
	}
	if err := c.cache.Set([]byte(key), value, 0); err != nil {
		c.cache.Del([]byte(key))
	}
	return nil
}

func (c *Cached) Delete(ctx context.Context, key string) error {
	err := c.next.Delete(ctx, key)

	c.mu.Lock()
	c.gens[key]++
	c.cache.Del([]byte(key))
	c.mu.Unlock()
	return err
}

// HitRate reports the share of cache lookups that hit since creation.
func (c *Cached) HitRate() float64 {
	return c.cache.HitRate()
}
