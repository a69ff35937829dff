package client

import (
	"context"
	"sync"

	"github.com/mmynk/officeplan/pkg/api"
)

// Cache is a read-through cache of the attendance ledger. It is filled on the
// first Snapshot after an Invalidate. Subscribers are told when the cache is
// invalidated and are expected to call Snapshot again.
type Cache struct {
	fetch func(ctx context.Context) ([]*api.AttendanceEntry, error)

	mu      sync.Mutex
	entries []api.AttendanceEntry
	valid   bool
	subs    map[int]func()
	nextSub int
}

func NewCache(fetch func(ctx context.Context) ([]*api.AttendanceEntry, error)) *Cache {
	return &Cache{fetch: fetch, subs: make(map[int]func())}
}

// Snapshot returns a copy of the cached entries, fetching them first when
// the cache is empty or invalidated.
func (c *Cache) Snapshot(ctx context.Context) ([]api.AttendanceEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid {
		fetched, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.entries = make([]api.AttendanceEntry, len(fetched))
		for i, e := range fetched {
			c.entries[i] = *e
		}
		c.valid = true
	}

	out := make([]api.AttendanceEntry, len(c.entries))
	copy(out, c.entries)
	return out, nil
}

// Invalidate drops the cached entries and notifies subscribers.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.entries = nil
	subs := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Subscribe registers fn to run after every invalidation. fn must not block.
// The returned function removes the subscription.
func (c *Cache) Subscribe(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
