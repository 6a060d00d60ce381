package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a key/value store with bounded lifetime entries.
type Cache[K comparable, V any] interface {
	// Get returns the value for key and whether it was present and unexpired.
	Get(key K) (V, bool)

	// Set stores value under key, replacing any previous entry.
	Set(key K, value V)

	// Delete removes key if present.
	Delete(key K)

	// Purge removes every entry.
	Purge()

	// Len reports the number of entries currently held.
	Len() int
}

// LRU is a Cache backed by an expirable LRU. Once size entries are held the
// least recently used one is evicted; entries older than the TTL are never
// returned.
type LRU[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

// NewLRU creates an LRU holding at most size entries for ttl each.
// A non-positive ttl disables expiry.
func NewLRU[K comparable, V any](size int, ttl time.Duration) *LRU[K, V] {
	if ttl < 0 {
		ttl = 0
	}
	return &LRU[K, V]{lru: expirable.NewLRU[K, V](size, nil, ttl)}
}

var _ Cache[string, int] = (*LRU[string, int])(nil)

func (c *LRU[K, V]) Get(key K) (V, bool) { return c.lru.Get(key) }

func (c *LRU[K, V]) Set(key K, value V) { c.lru.Add(key, value) }

func (c *LRU[K, V]) Delete(key K) { c.lru.Remove(key) }

func (c *LRU[K, V]) Purge() { c.lru.Purge() }

func (c *LRU[K, V]) Len() int { return c.lru.Len() }

// Noop never stores anything.
type Noop[K comparable, V any] struct{}

// NewNoop returns a Cache that always misses.
func NewNoop[K comparable, V any]() *Noop[K, V] {
	return &Noop[K, V]{}
}

var _ Cache[string, int] = (*Noop[string, int])(nil)

func (Noop[K, V]) Get(K) (V, bool) {
	var zero V
	return zero, false
}

func (Noop[K, V]) Set(K, V) {}

func (Noop[K, V]) Delete(K) {}

func (Noop[K, V]) Purge() {}

func (Noop[K, V]) Len() int { return 0 }

// New returns an LRU when enabled is true and a Noop otherwise.
func New[K comparable, V any](enabled bool, size int, ttl time.Duration) Cache[K, V] {
	if !enabled || size <= 0 {
		return NewNoop[K, V]()
	}
	return NewLRU[K, V](size, ttl)
}
