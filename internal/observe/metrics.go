// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry instruments recorded while files are
// processed.
//
// Tests and the CLI build a Metrics with NewMetrics over their own
// metric.MeterProvider. Library code that is handed no Metrics uses Noop.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/ik5/clicksplat"

// Metric names.
const (
	FilesMetric          = "clicksplat.files"
	ClicksMetric         = "clicksplat.clicks"
	SpectralFramesMetric = "clicksplat.spectral_frames"
	DecodedFramesMetric  = "clicksplat.decoded_frames"
	FileDurationMetric   = "clicksplat.file.duration"
)

// File outcomes used as the status attribute of FilesMetric.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Metrics holds the instruments. All fields are safe for concurrent use.
type Metrics struct {
	// Files counts processed files. Use with attribute.String("status", ...).
	Files metric.Int64Counter
	// Clicks counts clicks handed to a renderer.
	Clicks metric.Int64Counter
	// SpectralFrames counts spectrum snippets handed to a renderer.
	SpectralFrames metric.Int64Counter
	// DecodedFrames counts frames decoded at the internal rate.
	DecodedFrames metric.Int64Counter
	// FileDuration is the wall time spent on one file.
	FileDuration metric.Float64Histogram
}

var durationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Files, err = m.Int64Counter(FilesMetric,
		metric.WithDescription("Processed input files by status."),
		metric.WithUnit("{file}"),
	); err != nil {
		return nil, err
	}
	if met.Clicks, err = m.Int64Counter(ClicksMetric,
		metric.WithDescription("Clicks rendered."),
		metric.WithUnit("{click}"),
	); err != nil {
		return nil, err
	}
	if met.SpectralFrames, err = m.Int64Counter(SpectralFramesMetric,
		metric.WithDescription("Spectrum snippets rendered."),
		metric.WithUnit("{frame}"),
	); err != nil {
		return nil, err
	}
	if met.DecodedFrames, err = m.Int64Counter(DecodedFramesMetric,
		metric.WithDescription("Audio frames decoded at the internal rate."),
		metric.WithUnit("{frame}"),
	); err != nil {
		return nil, err
	}
	if met.FileDuration, err = m.Float64Histogram(FileDurationMetric,
		metric.WithDescription("Time spent processing one file."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	noopMetrics     *Metrics
	noopMetricsOnce sync.Once
)

// Noop returns Metrics that record nothing.
func Noop() *Metrics {
	noopMetricsOnce.Do(func() {
		var err error
		noopMetrics, err = NewMetrics(noop.NewMeterProvider())
		if err != nil {
			panic("observe: failed to create noop metrics: " + err.Error())
		}
	})
	return noopMetrics
}

// RecordFile records the outcome and duration of one file.
func (m *Metrics) RecordFile(ctx context.Context, status string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.Files.Add(ctx, 1, attrs)
	m.FileDuration.Record(ctx, seconds, attrs)
}

// RecordClick records one rendered click and its spectrum snippets.
func (m *Metrics) RecordClick(ctx context.Context, frames int) {
	m.Clicks.Add(ctx, 1)
	m.SpectralFrames.Add(ctx, int64(frames))
}

// RecordDecoded adds decoded frames.
func (m *Metrics) RecordDecoded(ctx context.Context, frames int) {
	m.DecodedFrames.Add(ctx, int64(frames))
}
