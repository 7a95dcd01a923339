// Package cache provides the storage layer behind memoized members.
//
// # Overview
//
// This package exports the pieces the memoize package composes:
//
//   - Store: one memoization table, created per memoized member per owner instance
//   - Config / NewStore: selects a shallow, deep or hashed store with an optional expiration window
//   - KeySerializer: renders arguments into stable strings
//   - EqualFunc: the structural equality predicate injected into deep stores
//   - TagRegistry: process-scoped mapping from tags to stores for bulk invalidation
//
// # Stores
//
// Shallow stores key a Go map by the derived key, so pointers compare by
// identity and primitives by value. Keys that are not comparable (slices,
// maps, funcs) fail with ErrUnhashableKey rather than panicking.
//
// Deep stores scan every stored key with an EqualFunc, which makes each
// lookup O(n) in the number of distinct keys. That is intended for members
// that see a handful of argument shapes. Storing a key equivalent to an
// existing one replaces it, so each shape maps to one entry.
//
// Hashed stores are an opt-in variant of deep stores: keys are bucketed by
// the xxhash of their serialized form and compared with the EqualFunc inside
// the bucket. The predicate must never report two keys equal when their
// serialized forms differ; DeepEqual and the default serializer satisfy this.
//
//	store, err := cache.NewStore(cache.Config{
//		Equality:   cache.EqualityDeep,
//		Equal:      cache.DeepEqual,
//		Expiration: time.Minute,
//	})
//
// # Expiration
//
// With a positive expiration window every Put records the current time and
// Lookup reports Stale once more than the window has elapsed. An entry equal
// to the window in age is still fresh. An entry without a timestamp is
// always stale when a window is configured.
//
// # Tags
//
// TagRegistry.ClearTags clears every store associated with any of the given
// tags and returns the count of distinct stores cleared:
//
//	registry := cache.DefaultTagRegistry()
//	cleared := registry.ClearTags("users", "sessions")
//
// Registration is idempotent per (tag, store) pair and entries are never
// removed; clearing empties the stores themselves.
//
// # Key Serialization
//
// The default serializer writes basic types with %v, recurses into slices,
// arrays, maps (sorted by key) and exported struct fields, formats funcs and
// channels by pointer and falls back to JSON for everything else. Funcs are
// only stable within a single process.
package cache
