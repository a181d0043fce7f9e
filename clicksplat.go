// SPDX-License-Identifier: EPL-2.0

package clicksplat

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/clicksplat/analysis"
	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/detect"
	"github.com/ik5/clicksplat/formats/aiff"
	"github.com/ik5/clicksplat/formats/wav"
	"github.com/ik5/clicksplat/pcm"
	"github.com/ik5/clicksplat/pipeline"
)

// Defaults.
const (
	DefaultChunkFrames = 1 << 13
	DefaultEvery       = 2
	DefaultFFTSize     = 256
)

// Config of a click extraction run.
type Config struct {
	// ChunkFrames is the decoder read size in file frames.
	ChunkFrames int
	Detect      detect.Config
	// Every keeps clicks Every, 2*Every, ... and drops the rest.
	Every int
	// FFTSize is the spectrum block size, a power of two.
	FFTSize int
	// Window applied to every block. Nil means no window.
	Window analysis.WindowFunc
	// PCM options for decoding WAV data.
	PCM []pcm.Option
}

// DefaultConfig returns the defaults: blocks of 256 frames under a Hann
// window, every second click.
func DefaultConfig() Config {
	return Config{
		ChunkFrames: DefaultChunkFrames,
		Detect:      detect.DefaultConfig(),
		Every:       DefaultEvery,
		FFTSize:     DefaultFFTSize,
		Window:      analysis.Hann(analysis.DefaultHannAlpha),
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.ChunkFrames < 1 {
		errs = append(errs, fmt.Errorf("chunk frames %d: %w", c.ChunkFrames, ErrInvalidConfig))
	}
	if c.Every < 1 {
		errs = append(errs, fmt.Errorf("every %d: %w", c.Every, ErrInvalidConfig))
	}
	if c.FFTSize < 2 || c.FFTSize&(c.FFTSize-1) != 0 {
		errs = append(errs, fmt.Errorf("fft size %d: %w: %w", c.FFTSize, ErrInvalidConfig, analysis.ErrUnsupportedFFTSize))
	}
	if err := c.Detect.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NewRegistry returns a registry with the WAV and AIFF decoders set up
// from c.
func (c Config) NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	w := wav.Decoder{ChunkFrames: c.ChunkFrames, Options: c.PCM}
	r.Register("wav", w)
	r.Register("wave", w)
	a := aiff.Decoder{ChunkFrames: c.ChunkFrames}
	r.Register("aif", a)
	r.Register("aiff", a)
	return r
}

// Group is one selected click and its spectrum.
type Group struct {
	// Start of the first spectral frame, which is the start of the click.
	Start int64
	// Click as captured by the detector, mono.
	Click audio.Snippet
	// Frames are successive magnitude spectra of FFTSize/2 bins each.
	Frames []audio.Snippet
}

// Renderer draws a Group.
type Renderer interface {
	Render(ctx context.Context, g Group) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, g Group) error

func (f RendererFunc) Render(ctx context.Context, g Group) error { return f(ctx, g) }

// SpectrumStage chains rechunking to FFTSize, the window, the FFT and the
// magnitude extraction.
func SpectrumStage(cfg Config) (pipeline.Stage[audio.Snippet, audio.Snippet], error) {
	return analysis.Spectrum(cfg.FFTSize, cfg.Window)
}

// ExtractClickSpectra returns a stage turning decoded audio into one Group
// per selected click. The spectrum of every click is computed by its own
// instance of SpectrumStage.
func ExtractClickSpectra(cfg Config) (pipeline.Stage[audio.Snippet, Group], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clicks, err := detect.Clicks(cfg.Detect)
	if err != nil {
		return nil, err
	}
	spectrum, err := SpectrumStage(cfg)
	if err != nil {
		return nil, err
	}
	every := pipeline.Every[audio.Snippet](cfg.Every)
	perClick := pipeline.SubPipeline(spectrum)

	return func(src pipeline.Stream[audio.Snippet]) pipeline.Stream[Group] {
		// SubPipeline pulls exactly one click per output, so the queue
		// holds the click belonging to the spectra being mapped.
		var queue []audio.Snippet
		picked := pipeline.Tap(func(c audio.Snippet) { queue = append(queue, c) })(every(clicks(src)))

		return pipeline.Map(func(frames []audio.Snippet) (Group, error) {
			click := queue[0]
			queue = queue[1:]
			return Group{Start: click.Start, Click: click, Frames: frames}, nil
		})(perClick(picked))
	}, nil
}
