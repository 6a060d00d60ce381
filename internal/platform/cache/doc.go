// Package cache provides the read-through caching facility used by the
// service layer: a size-bounded LRU with per-entry expiry, a no-op variant for
// when caching is disabled, and a Loader that collapses concurrent misses for
// the same key into a single load.
package cache
