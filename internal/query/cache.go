package query

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
	"github.com/smartstock-io/smartstock-backend/pkg/metrics"
)

// Key identifies a cache entry: an entity kind plus an optional scope such as
// a store id. Two consumers asking for the same key share one in-flight fetch.
type Key struct {
	Kind  enums.EntityKind
	Scope string
}

func (k Key) String() string {
	if k.Scope == "" {
		return k.Kind.String()
	}
	return fmt.Sprintf("%s:%s", k.Kind, k.Scope)
}

// Status describes the lifecycle of a cache entry.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Snapshot is the observable state of an entry at a point in time. On error
// Value still carries the last good result, if any (stale-but-visible).
type Snapshot struct {
	Status Status
	Value  any
	Err    error
}

// Fetcher loads the value for a key from the backing data source.
type Fetcher func(ctx context.Context) (any, error)

// Mutator performs a write against the backing data source.
type Mutator func(ctx context.Context) (any, error)

type entry struct {
	status      Status
	value       any
	err         error
	generation  uint64
	stale       bool
	subscribers int
}

// Cache coalesces fetches per key and tracks entry state. There is no TTL:
// a resolved value is fresh until a mutation invalidates its entity kind.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	metrics *metrics.QueryCacheMetrics
	logg    *logger.Logger
}

// NewCache constructs the cache. Metrics and logger may be nil in tests.
func NewCache(m *metrics.QueryCacheMetrics, logg *logger.Logger) *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		metrics: m,
		logg:    logg,
	}
}

// Query returns the cached value for key, fetching it if needed. Concurrent
// calls for the same key share a single fetch. A result whose generation was
// superseded by an invalidation is discarded and the fetch reissued, so the
// caller always observes the newest request's outcome.
func (c *Cache) Query(ctx context.Context, key Key, fetch Fetcher) Snapshot {
	if !key.Kind.IsValid() {
		panic(fmt.Sprintf("query: unknown entity kind %q", key.Kind))
	}

	for {
		c.mu.Lock()
		e, ok := c.entries[key]
		if !ok {
			e = &entry{status: StatusIdle}
			c.entries[key] = e
		}

		if e.status == StatusSuccess && !e.stale {
			snap := snapshotOf(e)
			c.mu.Unlock()
			c.metrics.IncHit(key.Kind.String())
			return snap
		}

		gen := e.generation
		e.status = StatusLoading
		c.mu.Unlock()

		value, err, shared := c.group.Do(flightKey(key, gen), func() (any, error) {
			return fetch(ctx)
		})
		if shared {
			c.metrics.IncCoalesced(key.Kind.String())
		} else {
			c.metrics.IncMiss(key.Kind.String())
		}

		c.mu.Lock()
		e, ok = c.entries[key]
		if !ok {
			// Every subscriber released the key while the fetch was in
			// flight; nothing to store.
			c.mu.Unlock()
			return Snapshot{Status: StatusIdle}
		}
		if e.generation != gen {
			// A newer request superseded this fetch; its result must not
			// overwrite fresher state.
			c.mu.Unlock()
			c.metrics.IncStaleDiscard(key.Kind.String())
			continue
		}

		if err != nil {
			e.status = StatusError
			e.err = err
			snap := snapshotOf(e)
			c.mu.Unlock()
			c.metrics.IncFetchFailure(key.Kind.String())
			if c.logg != nil {
				c.logg.Warn(ctx, fmt.Sprintf("fetch failed for %s: %v", key, err))
			}
			return snap
		}

		e.status = StatusSuccess
		e.value = value
		e.err = nil
		e.stale = false
		snap := snapshotOf(e)
		c.mu.Unlock()
		return snap
	}
}

// Mutate runs the mutator and, only on success, invalidates every entry of
// the listed entity kinds. A failed mutation leaves all cached state intact.
func (c *Cache) Mutate(ctx context.Context, mutate Mutator, invalidates ...enums.EntityKind) (any, error) {
	result, err := mutate(ctx)
	if err != nil {
		return nil, err
	}
	for _, kind := range invalidates {
		c.Invalidate(kind)
	}
	return result, nil
}

// Invalidate marks every entry of the kind stale, forcing the next read to
// re-fetch. Cached values stay visible until replaced. Invalidation is
// deliberately coarse: by kind, not by exact scope.
func (c *Cache) Invalidate(kind enums.EntityKind) {
	if !kind.IsValid() {
		panic(fmt.Sprintf("query: unknown entity kind %q", kind))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if key.Kind != kind {
			continue
		}
		e.stale = true
		e.generation++
		c.metrics.IncInvalidation(kind.String())
	}
}

// Subscribe registers a consumer for the key and returns the current count.
func (c *Cache) Subscribe(key Key) int {
	if !key.Kind.IsValid() {
		panic(fmt.Sprintf("query: unknown entity kind %q", key.Kind))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{status: StatusIdle}
		c.entries[key] = e
	}
	e.subscribers++
	return e.subscribers
}

// Release drops a consumer registration; the entry is evicted once the last
// subscriber is gone, matching consumer-unmount semantics.
func (c *Cache) Release(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0
	}
	if e.subscribers > 0 {
		e.subscribers--
	}
	if e.subscribers == 0 {
		delete(c.entries, key)
	}
	return e.subscribers
}

// Peek returns the entry state without triggering a fetch.
func (c *Cache) Peek(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{Status: StatusIdle}, false
	}
	return snapshotOf(e), true
}

func snapshotOf(e *entry) Snapshot {
	return Snapshot{
		Status: e.status,
		Value:  e.value,
		Err:    e.err,
	}
}

func flightKey(key Key, generation uint64) string {
	return fmt.Sprintf("%s#%d", key, generation)
}
