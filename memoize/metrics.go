package memoize

import (
	"context"

	"github.com/goliatone/go-memoize/cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/goliatone/go-memoize"

// failure stages
const (
	stageKey     = "key"
	stageCompute = "compute"
	stageStore   = "store"
)

type instruments struct {
	member  attribute.KeyValue
	lookups metric.Int64Counter
	errors  metric.Int64Counter
}

func meterOrGlobal(meter metric.Meter) metric.Meter {
	if meter == nil {
		return otel.Meter(instrumentationName)
	}
	return meter
}

func newInstruments(meter metric.Meter, name string) (*instruments, error) {
	meter = meterOrGlobal(meter)

	lookups, err := meter.Int64Counter(
		"memoize.lookups",
		metric.WithDescription("Memoized member lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		"memoize.errors",
		metric.WithDescription("Memoized calls that returned an error, by stage"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return &instruments{
		member:  attribute.String("member", name),
		lookups: lookups,
		errors:  errs,
	}, nil
}

func noopInstruments(name string) *instruments {
	return &instruments{
		member:  attribute.String("member", name),
		lookups: noopCounter(),
		errors:  noopCounter(),
	}
}

func noopCounter() metric.Int64Counter { return noop.Int64Counter{} }

func (i *instruments) lookup(outcome cache.Outcome) {
	i.lookups.Add(context.Background(), 1,
		metric.WithAttributes(i.member, attribute.String("outcome", outcome.String())))
}

func (i *instruments) failure(stage string) {
	i.errors.Add(context.Background(), 1,
		metric.WithAttributes(i.member, attribute.String("stage", stage)))
}
