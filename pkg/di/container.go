package di

import (
	"github.com/apex/log"
	"github.com/goliatone/go-memoize/cache"
	"github.com/goliatone/go-memoize/memoize"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Config holds the dependencies shared by every member built through a Container.
type Config struct {
	Clock    cache.Clock
	Logger   log.Interface
	Meter    metric.Meter
	Registry *cache.TagRegistry
}

// DefaultConfig returns a configuration with the system clock, log.Log,
// the global meter and a fresh tag registry.
func DefaultConfig() Config {
	return Config{
		Clock:    cache.SystemClock{},
		Logger:   log.Log,
		Meter:    otel.Meter("github.com/goliatone/go-memoize"),
		Registry: cache.NewTagRegistry(),
	}
}

// Container provides dependency injection for memoized members.
// Members built through it share one clock, logger, meter and tag
// registry, so ClearTags on the container reaches all of them.
type Container struct {
	config      Config
	invalidator *memoize.Invalidator
}

// NewContainer creates a container from config. Zero fields are filled
// from DefaultConfig.
func NewContainer(config Config) (*Container, error) {
	defaults := DefaultConfig()
	if config.Clock == nil {
		config.Clock = defaults.Clock
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
	if config.Meter == nil {
		config.Meter = defaults.Meter
	}
	if config.Registry == nil {
		config.Registry = defaults.Registry
	}

	invalidator, err := memoize.NewInvalidator(config.Registry, config.Logger, config.Meter)
	if err != nil {
		return nil, err
	}

	return &Container{config: config, invalidator: invalidator}, nil
}

// NewContainerWithDefaults creates a container using DefaultConfig.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(DefaultConfig())
}

// Options returns opts with the container's shared dependencies applied.
// Fields already set on opts are kept, except Registry: members built
// through the container always register with its registry.
func (c *Container) Options(opts memoize.Options) memoize.Options {
	opts.Registry = c.config.Registry
	if opts.Clock == nil {
		opts.Clock = c.config.Clock
	}
	if opts.Logger == nil {
		opts.Logger = c.config.Logger
	}
	if opts.Meter == nil {
		opts.Meter = c.config.Meter
	}
	return opts
}

// ClearTags clears every store registered under tags by members of this container.
func (c *Container) ClearTags(tags ...string) int {
	return c.invalidator.ClearTags(tags...)
}

// Registry returns the shared tag registry.
func (c *Container) Registry() *cache.TagRegistry { return c.config.Registry }

// Clock returns the shared clock.
func (c *Container) Clock() cache.Clock { return c.config.Clock }

// Logger returns the shared logger.
func (c *Container) Logger() log.Interface { return c.config.Logger }

// Config returns a copy of the container configuration.
func (c *Container) Config() Config { return c.config }

// Property builds a memoized property wired to the container.
//
// Since Go methods cannot have type parameters, this is provided as a package-level function.
func Property[O memoize.Owner, R any](c *Container, opts memoize.Options, fn func(owner O) (R, error)) (*memoize.Lazy[O, R], error) {
	return memoize.NewProperty(c.Options(opts), fn)
}

// Method builds a memoized variadic method wired to the container.
func Method[O memoize.Owner, R any](c *Container, opts memoize.Options, fn func(owner O, args ...any) (R, error)) (*memoize.Memo[O, R], error) {
	return memoize.NewMethod(c.Options(opts), fn)
}

// Decorate wraps target with memoize.Decorate using the container's dependencies.
func (c *Container) Decorate(target any, opts memoize.Options) (*memoize.Func, error) {
	return memoize.Decorate(target, c.Options(opts))
}
