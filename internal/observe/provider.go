// SPDX-License-Identifier: EPL-2.0

package observe

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Provider is an in-process MeterProvider whose counters can be read back,
// for run summaries of a batch tool.
type Provider struct {
	*sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
}

// NewProvider returns a Provider backed by a manual reader.
func NewProvider() *Provider {
	reader := sdkmetric.NewManualReader()
	return &Provider{
		MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader:        reader,
	}
}

// Totals collects every int64 sum. Data points carrying attributes are
// reported under "name{key=value,...}".
func (p *Provider) Totals(ctx context.Context) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}

	enc := attribute.DefaultEncoder()
	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[seriesName(m.Name, dp.Attributes.Encoded(enc))] += dp.Value
			}
		}
	}
	return out, nil
}

func seriesName(name, attrs string) string {
	if attrs == "" {
		return name
	}
	return name + "{" + attrs + "}"
}

// SortedKeys returns the keys of totals in order.
func SortedKeys(totals map[string]int64) []string {
	return slices.Sorted(maps.Keys(totals))
}
