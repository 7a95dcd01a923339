package cache

import (
	"time"

	"github.com/goliatone/go-memoize/internal/cacheinfra"
)

// ErrUnhashableKey is returned by shallow stores for keys that cannot be
// compared with ==.
var ErrUnhashableKey = cacheinfra.ErrUnhashableKey

// Outcome reports what a Lookup found.
type Outcome = cacheinfra.Outcome

const (
	Miss  = cacheinfra.Miss
	Hit   = cacheinfra.Hit
	Stale = cacheinfra.Stale
)

// EqualityMode selects how derived keys are compared inside a store.
type EqualityMode = cacheinfra.Mode

const (
	// EqualityDeep compares keys structurally. It is the zero value.
	EqualityDeep = cacheinfra.ModeDeep
	// EqualityShallow compares keys with ==.
	EqualityShallow = cacheinfra.ModeShallow
)

// Clock supplies the current time for expiration checks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock = cacheinfra.SystemClock

// Store is one memoization table. Each memoized member owns one Store per
// owner instance.
//
// Contract:
// - Lookup applies the store's expiration window; a Stale outcome is a miss.
// - Put replaces any entry whose key is equivalent under the store's mode.
// - Clear drops every entry and returns how many were dropped. Idempotent.
// - Stores are safe for concurrent use; no lock is held between calls.
type Store interface {
	Lookup(key any) (value any, outcome Outcome, err error)
	Put(key, value any) error
	Clear() int
	Len() int
}
