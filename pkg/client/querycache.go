// AngelaMos | 2026
// querycache.go

package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// QueryCache shares read results between callers. Concurrent loads of the
// same key run once, results live for ttl, and Invalidate drops every key
// under a prefix and tells subscribers watching it.
type QueryCache struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu       sync.Mutex
	entries  map[string]cacheEntry
	inflight map[string]uint64
	epoch    uint64
	subs     map[uint64]subscription
	nextSub  uint64
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

type subscription struct {
	prefix string
	fn     func(prefix string)
}

func NewQueryCache(ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &QueryCache{
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
		inflight: make(map[string]uint64),
		subs:     make(map[uint64]subscription),
	}
}

// Get returns the cached value for key or runs load. Callers that arrive
// while a load is running wait for it instead of starting their own. The
// load runs detached from any single caller's cancellation.
func (c *QueryCache) Get(
	ctx context.Context,
	key string,
	load func(ctx context.Context) (any, error),
) (any, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// A load for key may have finished between lookup and DoChan.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		c.mu.Lock()
		epoch := c.epoch
		c.inflight[key] = epoch
		c.mu.Unlock()

		v, err := load(loadCtx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.inflight[key] == epoch {
			delete(c.inflight, key)
		}
		// Anything invalidated while loading may already be stale.
		if err == nil && c.epoch == epoch {
			c.entries[key] = cacheEntry{value: v, expiresAt: c.now().Add(c.ttl)}
		}
		return v, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (c *QueryCache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Invalidate drops every key starting with prefix. An empty prefix clears
// the cache. Subscribers whose prefix overlaps are notified after the
// entries are gone.
func (c *QueryCache) Invalidate(prefix string) {
	c.mu.Lock()
	c.epoch++
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	for key := range c.inflight {
		if strings.HasPrefix(key, prefix) {
			c.group.Forget(key)
		}
	}

	var notify []func(string)
	for _, sub := range c.subs {
		if strings.HasPrefix(sub.prefix, prefix) || strings.HasPrefix(prefix, sub.prefix) {
			notify = append(notify, sub.fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range notify {
		fn(prefix)
	}
}

// Subscribe registers fn for invalidations touching prefix. The returned
// func removes the subscription.
func (c *QueryCache) Subscribe(prefix string, fn func(prefix string)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = subscription{prefix: prefix, fn: fn}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Len reports the number of live entries.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	now := c.now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// cached is Get with a typed result.
func cached[T any](
	ctx context.Context,
	c *QueryCache,
	key string,
	load func(ctx context.Context) (T, error),
) (T, error) {
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// readThrough serves key from the client's shared cache, or calls load
// directly when the client is isolated.
func readThrough[T any](
	ctx context.Context,
	c *Client,
	key string,
	load func(ctx context.Context) (T, error),
) (T, error) {
	if c.cache == nil {
		return load(ctx)
	}
	return cached(ctx, c.cache, key, load)
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
