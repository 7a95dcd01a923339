package cacheinfra

import "time"

// Clock is the time source used for expiration bookkeeping.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Outcome is the result of a store lookup.
type Outcome int

const (
	// Miss means no entry exists for the key.
	Miss Outcome = iota
	// Hit means a fresh entry was found.
	Hit
	// Stale means an entry exists but may not be reused.
	Stale
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Stale:
		return "stale"
	default:
		return "miss"
	}
}

// entry is a stored value with its optional timestamp.
type entry struct {
	value    any
	storedAt time.Time
	stamped  bool
}

// Policy decides staleness for stored entries.
// A zero Window disables expiration.
type Policy struct {
	Window time.Duration
	Clock  Clock
}

// Enabled reports whether entries carry timestamps.
func (p Policy) Enabled() bool {
	return p.Window > 0
}

// outcome classifies an existing entry. An entry with no timestamp is stale
// whenever expiration is enabled.
func (p Policy) outcome(e *entry) Outcome {
	if !p.Enabled() {
		return Hit
	}
	if !e.stamped {
		return Stale
	}
	if p.Clock.Now().Sub(e.storedAt) > p.Window {
		return Stale
	}
	return Hit
}

func (p Policy) newEntry(value any) *entry {
	e := &entry{value: value}
	if p.Enabled() {
		e.storedAt = p.Clock.Now()
		e.stamped = true
	}
	return e
}
