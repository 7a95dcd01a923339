package memoize

import (
	"context"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/goliatone/go-memoize/cache"
	"github.com/goliatone/go-memoize/pkg/testsupport"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// greeter is the owner type used across the package tests.
type greeter struct {
	State
	Name string `json:"name"`

	calls *testsupport.CallCounter
}

func newGreeter(name string) *greeter {
	return &greeter{Name: name, calls: testsupport.NewCallCounter()}
}

// isolated returns options that register tags in a private registry so
// tests do not see each other's stores.
func isolated() (Options, *cache.TagRegistry) {
	registry := cache.NewTagRegistry()
	return Options{Registry: registry}, registry
}

func memoryLogger() (*log.Logger, *memory.Handler) {
	h := memory.New()
	return &log.Logger{Handler: h, Level: log.DebugLevel}, h
}

func manualMeter() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return provider, reader
}

// counterValue sums the data points of an int64 counter whose attributes
// include every key/value pair in attrs.
func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string, attrs map[string]string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s has data %T, want Sum[int64]", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				if matches(dp.Attributes.ToSlice(), attrs) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func matches(kvs []attribute.KeyValue, want map[string]string) bool {
	found := 0
	for _, kv := range kvs {
		if v, ok := want[string(kv.Key)]; ok && kv.Value.Emit() == v {
			found++
		}
	}
	return found == len(want)
}
