package cache

import (
	"time"

	"github.com/goliatone/go-memoize/internal/cacheinfra"
)

// ConfigError reports an invalid configuration value. Memoized members
// raise it when they are built, never when they are called.
type ConfigError = cacheinfra.ConfigError

// Config exposes store configuration options for consumers of the cache package.
type Config struct {
	Equality   EqualityMode
	Expiration time.Duration
	Equal      EqualFunc
	Hashed     bool
	Serializer KeySerializer
	Clock      Clock
}

// DefaultConfig returns a deep-equality, non-expiring store configuration
// using DeepEqual and the default key serializer.
func DefaultConfig() Config {
	cfg := convertFromInternal(cacheinfra.DefaultConfig())
	cfg.Equal = DeepEqual
	cfg.Serializer = NewDefaultKeySerializer()
	return cfg
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewStore constructs the store implementation selected by cfg.
func NewStore(cfg Config) (Store, error) {
	return cacheinfra.NewStore(cfg.toInternal())
}

func (c Config) toInternal() cacheinfra.Config {
	var canonical func(any) string
	if c.Hashed {
		serializer := c.Serializer
		if serializer == nil {
			serializer = NewDefaultKeySerializer()
		}
		canonical = serializer.SerializeValue
	}

	var clock cacheinfra.Clock
	if c.Clock != nil {
		clock = c.Clock
	}

	return cacheinfra.Config{
		Mode:       c.Equality,
		Expiration: c.Expiration,
		Equal:      c.Equal,
		Hashed:     c.Hashed,
		Canonical:  canonical,
		Clock:      clock,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	var clock Clock
	if cfg.Clock != nil {
		clock = cfg.Clock
	}

	return Config{
		Equality:   cfg.Mode,
		Expiration: cfg.Expiration,
		Equal:      cfg.Equal,
		Hashed:     cfg.Hashed,
		Clock:      clock,
	}
}
