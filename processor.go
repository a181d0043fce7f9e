// SPDX-License-Identifier: EPL-2.0

package clicksplat

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/internal/observe"
	"github.com/ik5/clicksplat/pipeline"
)

// Processor runs click extraction over files. The zero value of every field
// but Config is usable.
type Processor struct {
	Config Config
	// Registry picks a decoder by file extension. Nil uses
	// Config.NewRegistry.
	Registry *audio.Registry
	// Metrics defaults to observe.Noop.
	Metrics *observe.Metrics
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Result summarizes one processed file.
type Result struct {
	DecodedFrames  int64
	Clicks         int
	SpectralFrames int
}

// ProcessFile decodes path, extracts click spectra and renders every group.
// Any failure aborts the file; groups rendered before it stay rendered.
func (p *Processor) ProcessFile(ctx context.Context, path string, r Renderer) (Result, error) {
	log := p.logger().With("file", path)
	began := time.Now()

	res, err := p.process(ctx, path, r, log)

	status := observe.StatusOK
	if err != nil {
		status = observe.StatusFailed
	}
	elapsed := time.Since(began)
	p.metrics().RecordFile(ctx, status, elapsed.Seconds())

	if err != nil {
		return res, err
	}
	log.Info("file processed",
		"clicks", res.Clicks,
		"spectral_frames", res.SpectralFrames,
		"decoded_frames", res.DecodedFrames,
		"elapsed", elapsed,
	)
	return res, nil
}

func (p *Processor) process(ctx context.Context, path string, r Renderer, log *slog.Logger) (Result, error) {
	var res Result

	stage, err := ExtractClickSpectra(p.Config)
	if err != nil {
		return res, err
	}

	registry := p.Registry
	if registry == nil {
		registry = p.Config.NewRegistry()
	}
	dec, err := registry.ForPath(path)
	if err != nil {
		return res, err
	}

	f, err := os.Open(path)
	if err != nil {
		return res, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return res, fmt.Errorf("decode %q: %w", path, err)
	}

	met := p.metrics()
	counted := pipeline.Tap(func(s audio.Snippet) {
		n := s.Sample.Frames()
		res.DecodedFrames += int64(n)
		met.RecordDecoded(ctx, n)
	})(src)

	sink := pipeline.SinkFunc[Group](func(g Group) error {
		if err := r.Render(ctx, g); err != nil {
			return fmt.Errorf("render click at %d: %w", g.Start, err)
		}
		res.Clicks++
		res.SpectralFrames += len(g.Frames)
		met.RecordClick(ctx, len(g.Frames))
		log.Debug("click rendered", "start", g.Start, "frames", len(g.Frames))
		return nil
	})

	if err := pipeline.Drain(ctx, stage(counted), sink); err != nil {
		return res, fmt.Errorf("process %q: %w", path, err)
	}
	return res, nil
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Processor) metrics() *observe.Metrics {
	if p.Metrics != nil {
		return p.Metrics
	}
	return observe.Noop()
}
