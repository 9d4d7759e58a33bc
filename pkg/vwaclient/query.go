package vwaclient

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query: the resource name plus a canonical
// encoding of the active filters. Changing a filter changes the key, so
// the previous result simply ages out as stale.
type Key struct {
	Resource string
	Filters  string
}

// NewKey builds a Key with filters canonicalised by sorted k=v pairs.
func NewKey(resource string, filters map[string]string) Key {
	if len(filters) == 0 {
		return Key{Resource: resource}
	}
	pairs := make([]string, 0, len(filters))
	for k, v := range filters {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return Key{Resource: resource, Filters: strings.Join(pairs, "&")}
}

// viewKey names a derived view of a resource ("assets#summary"). The
// "#" separator keeps derived views out of the filter namespace, so
// caller-supplied filters can never collide with one, while
// InvalidateResource on the base resource still drops them.
func viewKey(resource, view string) Key {
	return Key{Resource: resource + "#" + view}
}

func (k Key) id() string { return k.Resource + "?" + k.Filters }

type cacheEntry struct {
	data      any
	err       error
	fetchedAt time.Time
}

// Cache is the keyed query cache. Concurrent fetches for the same key
// are coalesced: at most one request is in flight per key, duplicate
// callers await the shared result.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]cacheEntry
	group   singleflight.Group
	ttl     time.Duration
}

// NewCache creates a query cache. Entries older than ttl are refetched
// on next access; ttl <= 0 means entries never expire by age.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[Key]cacheEntry),
		ttl:     ttl,
	}
}

// InvalidateResource drops every cached key for the resource,
// including its derived views. The next access under any dropped key
// refetches.
func (c *Cache) InvalidateResource(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Resource == resource || strings.HasPrefix(k.Resource, resource+"#") {
			delete(c.entries, k)
		}
	}
}

// lookup returns a fresh entry, if any. Error entries are never fresh:
// a failed query is surfaced once and re-issued on the next access.
func (c *Cache) lookup(key Key) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.err != nil {
		return cacheEntry{}, false
	}
	if c.ttl > 0 && time.Since(e.fetchedAt) > c.ttl {
		return cacheEntry{}, false
	}
	return e, true
}

func (c *Cache) store(key Key, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, err: err, fetchedAt: time.Now()}
}

// Run resolves a keyed query through the cache: a fresh cached value is
// returned immediately, otherwise fetch runs under singleflight and the
// result is stored. A caller whose context is cancelled while awaiting
// a shared in-flight fetch abandons the result without touching the
// cache; the winning fetch still completes and stores for others.
func Run[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if e, ok := c.lookup(key); ok {
		if v, ok := e.data.(T); ok {
			return v, nil
		}
		// A differently-typed query produced this entry. Treat it as
		// a miss and refetch instead of asserting.
	}

	ch := c.group.DoChan(key.id(), func() (any, error) {
		// Detached from the initiating caller so a single unmount
		// cannot fail the shared fetch.
		data, err := fetch(context.WithoutCancel(ctx))
		c.store(key, data, err)
		return data, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if v, ok := res.Val.(T); ok {
			return v, nil
		}
		// Shared the flight with a differently-typed query under the
		// same key. Fetch independently and overwrite.
		data, err := fetch(ctx)
		if err != nil {
			return zero, err
		}
		c.store(key, data, nil)
		return data, nil
	}
}
