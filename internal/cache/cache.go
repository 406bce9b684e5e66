// Package cache provides a small thread-safe LRU cache for values that are
// expensive to derive from a key, such as blur kernels.
package cache

import "sync"

// Cache is a generic LRU cache holding at most capacity entries.
//
// Cache is safe for concurrent use and must not be copied.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	order    lruList[K, V]
	capacity int

	hits, misses uint64
}

type entry[K comparable, V any] struct {
	node  lruNode[K, V]
	value V
}

// New creates a cache holding at most capacity entries. A capacity of zero
// or less means unlimited.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*entry[K, V]),
		capacity: capacity,
	}
}

// Get returns the value for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(&e.node)
	return e.value, true
}

// GetOrCreate returns the value for key, calling create on a miss. create
// runs under the cache lock, so concurrent misses on one key compute once.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.order.moveToFront(&e.node)
		return e.value
	}
	c.misses++
	v := create()
	c.insert(key, v)
	return v
}

// Set stores value under key, evicting the least recently used entry when
// full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.order.moveToFront(&e.node)
		return
	}
	c.insert(key, value)
}

// insert adds a new entry. Caller holds c.mu.
func (c *Cache[K, V]) insert(key K, value V) {
	e := &entry[K, V]{value: value}
	e.node.key = key
	c.entries[key] = e
	c.order.pushFront(&e.node)
	for c.capacity > 0 && len(c.entries) > c.capacity {
		old, ok := c.order.removeOldest()
		if !ok {
			break
		}
		delete(c.entries, old)
	}
}

// Clear drops every entry and resets the statistics.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[K, V])
	c.order = lruList[K, V]{}
	c.hits, c.misses = 0, 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Len: len(c.entries), Capacity: c.capacity, Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
	// HitRate is Hits over all lookups, 0 before the first lookup.
	HitRate float64
}
