package cacheinfra

import (
	"errors"
	"time"
)

// ErrUnhashableKey is returned by shallow stores when a derived key cannot be
// used as a map key (slices, maps, funcs or structs holding them).
var ErrUnhashableKey = errors.New("cache: key is not comparable")

// Mode selects how a store compares derived keys.
type Mode int

const (
	// ModeDeep compares keys by structural equality using the configured EqualFunc.
	ModeDeep Mode = iota
	// ModeShallow compares keys with Go's == semantics through a map.
	ModeShallow
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDeep:
		return "deep"
	case ModeShallow:
		return "shallow"
	default:
		return "unknown"
	}
}

// Config holds the configuration for a single memoization store.
// One store is created per memoized member per owner instance, so the
// config is shared by every store of the same member.
type Config struct {
	// Mode determines how derived keys are compared.
	// Default: ModeDeep
	Mode Mode

	// Expiration is the freshness window for stored values.
	// Zero disables expiration entirely; negative values are rejected.
	Expiration time.Duration

	// Equal decides structural equivalence of two keys in deep mode.
	// Required for ModeDeep.
	Equal func(a, b any) bool

	// Hashed switches deep stores from a linear scan to xxhash buckets.
	// Keys that Equal reports as equivalent must produce the same Canonical
	// string, otherwise lookups miss. Only valid with ModeDeep.
	Hashed bool

	// Canonical renders a key into its bucket string. Required when Hashed is set.
	Canonical func(v any) string

	// Clock supplies timestamps for expiration bookkeeping.
	// Nil uses the system clock.
	Clock Clock
}

// DefaultConfig returns a Config for a deep, non-expiring, linear-scan store.
// The Equal predicate is left nil; callers inject one.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeDeep,
		Expiration: 0,
		Hashed:     false,
		Clock:      SystemClock{},
	}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Mode != ModeDeep && c.Mode != ModeShallow {
		return &ConfigError{Field: "Mode", Message: "must be deep or shallow"}
	}

	if c.Expiration < 0 {
		return &ConfigError{Field: "Expiration", Message: "must be non-negative"}
	}

	if c.Mode == ModeDeep && c.Equal == nil {
		return &ConfigError{Field: "Equal", Message: "is required for deep equality stores"}
	}

	if c.Hashed {
		if c.Mode != ModeDeep {
			return &ConfigError{Field: "Hashed", Message: "only applies to deep equality stores"}
		}
		if c.Canonical == nil {
			return &ConfigError{Field: "Canonical", Message: "is required for hashed stores"}
		}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// Store is the contract shared by every store implementation in this package.
type Store interface {
	Lookup(key any) (any, Outcome, error)
	Put(key, value any) error
	Clear() int
	Len() int
}

// NewStore validates cfg and builds the store implementation it selects:
// a map for shallow mode, a linear scan for deep mode and xxhash buckets
// for hashed deep mode.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	policy := Policy{Window: cfg.Expiration, Clock: clock}

	switch {
	case cfg.Mode == ModeShallow:
		return newShallowStore(policy), nil
	case cfg.Hashed:
		return newHashedStore(policy, cfg.Equal, cfg.Canonical), nil
	default:
		return newDeepStore(policy, cfg.Equal), nil
	}
}
