package memoize

import (
	"context"
	"sync"

	"github.com/apex/log"
	"github.com/goliatone/go-memoize/cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Invalidator clears tagged stores and records what it did.
type Invalidator struct {
	registry *cache.TagRegistry
	logger   log.Interface
	cleared  metric.Int64Counter
}

// NewInvalidator builds an Invalidator over registry. Nil arguments fall
// back to the process-wide registry, log.Log and the global meter.
func NewInvalidator(registry *cache.TagRegistry, logger log.Interface, meter metric.Meter) (*Invalidator, error) {
	if registry == nil {
		registry = cache.DefaultTagRegistry()
	}
	if logger == nil {
		logger = log.Log
	}

	cleared, err := meterOrGlobal(meter).Int64Counter(
		"memoize.cleared",
		metric.WithDescription("Stores cleared through tag invalidation"),
		metric.WithUnit("{store}"),
	)
	if err != nil {
		return nil, err
	}

	return &Invalidator{registry: registry, logger: logger, cleared: cleared}, nil
}

// ClearTags empties every store registered under any of tags and returns
// the number of distinct stores cleared. Unknown tags contribute nothing.
func (i *Invalidator) ClearTags(tags ...string) int {
	n := i.registry.ClearTags(tags...)

	i.cleared.Add(context.Background(), int64(n),
		metric.WithAttributes(attribute.Int("tag_count", len(tags))))
	i.logger.WithFields(log.Fields{
		"tags":   tags,
		"stores": n,
	}).Info("memoize: tags cleared")

	return n
}

// Registry returns the registry i clears.
func (i *Invalidator) Registry() *cache.TagRegistry { return i.registry }

var defaultInvalidator = sync.OnceValue(func() *Invalidator {
	inv, err := NewInvalidator(nil, nil, nil)
	if err != nil {
		log.WithError(err).Warn("memoize: invalidation metrics disabled")
		return &Invalidator{registry: cache.DefaultTagRegistry(), logger: log.Log, cleared: noopCounter()}
	}
	return inv
})

// ClearTags clears stores in the process-wide registry, the one members
// use when Options.Registry is nil.
func ClearTags(tags ...string) int {
	return defaultInvalidator().ClearTags(tags...)
}
