package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// LoadFunc fetches the value for a key on a cache miss.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Loader is a read-through front for a Cache. Concurrent misses for the same
// key share one call to the load function. Failed loads are not cached.
type Loader[K comparable, V any] struct {
	cache Cache[K, V]
	group singleflight.Group
}

// NewLoader wraps c. A nil c behaves like NewNoop.
func NewLoader[K comparable, V any](c Cache[K, V]) *Loader[K, V] {
	if c == nil {
		c = NewNoop[K, V]()
	}
	return &Loader[K, V]{cache: c}
}

// Load returns the cached value for key, or calls load and caches its result.
// The shared load runs detached from the cancellation of whichever caller
// started it; each caller stops waiting when its own ctx is done.
func (l *Loader[K, V]) Load(ctx context.Context, key K, load LoadFunc[K, V]) (V, error) {
	var zero V
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(fmt.Sprint(key), func() (any, error) {
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		v, err := load(loadCtx, key)
		if err != nil {
			return v, err
		}
		l.cache.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// Prime stores value under key without loading.
func (l *Loader[K, V]) Prime(key K, value V) {
	l.cache.Set(key, value)
}

// Invalidate drops key from the cache.
func (l *Loader[K, V]) Invalidate(key K) {
	l.cache.Delete(key)
}

// Cache returns the underlying cache.
func (l *Loader[K, V]) Cache() Cache[K, V] {
	return l.cache
}
