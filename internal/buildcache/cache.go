// Package buildcache remembers finished dependency builds by their
// BuildRequestID and runs at most one build per identity at a time.
package buildcache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kisixing/srcdeps-core/internal/build"
)

// Outcome describes a finished build.
type Outcome struct {
	ID       build.BuildRequestID
	Dir      string
	Revision string
	Finished time.Time
}

// BuildFunc performs the build described by r.
type BuildFunc func(ctx context.Context, r *build.Request) (Outcome, error)

// Cache is safe for concurrent use. Entries live as long as the Cache.
type Cache struct {
	mu   sync.RWMutex
	done map[build.BuildRequestID]Outcome

	group singleflight.Group
	now   func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		done: make(map[build.BuildRequestID]Outcome),
		now:  time.Now,
	}
}

// Get returns the outcome recorded for id.
func (c *Cache) Get(id build.BuildRequestID) (Outcome, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.done[id]
	return o, ok
}

// Put records an outcome under its ID.
func (c *Cache) Put(o Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done[o.ID] = o
}

// Len returns the number of recorded outcomes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.done)
}

// Do returns the recorded outcome for r or runs fn. Concurrent calls for the
// same identity share one run of fn. Failed builds are not recorded, so a
// later call retries. The returned bool reports whether the outcome came from
// the cache or from a run started by another caller.
func (c *Cache) Do(ctx context.Context, r *build.Request, fn BuildFunc) (Outcome, bool, error) {
	id := r.ID()
	if o, ok := c.Get(id); ok {
		return o, true, nil
	}
	v, err, shared := c.group.Do(id.Hash(), func() (any, error) {
		if o, ok := c.Get(id); ok {
			return o, nil
		}
		o, err := fn(ctx, r)
		if err != nil {
			return Outcome{}, err
		}
		o.ID = id
		if o.Finished.IsZero() {
			o.Finished = c.now()
		}
		c.Put(o)
		return o, nil
	})
	return v.(Outcome), shared, err
}
