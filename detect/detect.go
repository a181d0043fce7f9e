// SPDX-License-Identifier: EPL-2.0

package detect

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/pipeline"
)

// MixDown as Config.Channel searches the mean of all channels.
const MixDown = -1

// Defaults.
const (
	DefaultCaptureLength  = 1024 * 20
	DefaultSmoothingSize  = 128
	DefaultRocThreshold   = 0.0015
	DefaultLevelThreshold = 0.05
)

// Config of a click detector.
type Config struct {
	// Channel searched for clicks, or MixDown.
	Channel int `yaml:"channel"`
	// CaptureLength is one less than the number of values in every emitted
	// click.
	CaptureLength int `yaml:"capture_length"`
	// SmoothingSize is the level window size and the number of samples kept
	// ahead of the trigger.
	SmoothingSize  int     `yaml:"smoothing_size"`
	RocThreshold   float64 `yaml:"roc_threshold"`
	LevelThreshold float64 `yaml:"level_threshold"`
}

// DefaultConfig returns the default detector settings.
func DefaultConfig() Config {
	return Config{
		Channel:        0,
		CaptureLength:  DefaultCaptureLength,
		SmoothingSize:  DefaultSmoothingSize,
		RocThreshold:   DefaultRocThreshold,
		LevelThreshold: DefaultLevelThreshold,
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Channel < MixDown {
		errs = append(errs, fmt.Errorf("channel %d: %w", c.Channel, ErrInvalidConfig))
	}
	if c.CaptureLength < 1 {
		errs = append(errs, fmt.Errorf("capture length %d: %w", c.CaptureLength, ErrInvalidConfig))
	}
	if c.SmoothingSize < 1 {
		errs = append(errs, fmt.Errorf("smoothing size %d: %w", c.SmoothingSize, ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// Clicks returns a stage emitting one mono snippet per detected click. With
// Channel set to MixDown the input passes through audio.MixDown first.
func Clicks(cfg Config) (pipeline.Stage[audio.Snippet, audio.Snippet], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var search pipeline.Stage[audio.Snippet, audio.Snippet] = func(src pipeline.Stream[audio.Snippet]) pipeline.Stream[audio.Snippet] {
		return newDetector(src, cfg, max(cfg.Channel, 0))
	}
	if cfg.Channel == MixDown {
		return pipeline.Chain(audio.MixDown(), search), nil
	}
	return search, nil
}

type detector struct {
	src     pipeline.Stream[audio.Snippet]
	cfg     Config
	channel int
	level   *Level
	lead    int64 // ticks covered by the pre-trigger samples
	capture []float64
	start   int64
	active  bool
	ready   []audio.Snippet
}

func newDetector(src pipeline.Stream[audio.Snippet], cfg Config, channel int) *detector {
	return &detector{
		src:     src,
		cfg:     cfg,
		channel: channel,
		level:   NewLevel(cfg.SmoothingSize),
		lead:    audio.FramesToTicks(int64(cfg.SmoothingSize), audio.InternalRate),
	}
}

func (d *detector) Next() (audio.Snippet, error) {
	for len(d.ready) == 0 {
		s, err := d.src.Next()
		if errors.Is(err, io.EOF) {
			d.capture, d.active = nil, false
			return audio.Snippet{}, io.EOF
		}
		if err != nil {
			return audio.Snippet{}, err
		}
		if err := d.scan(s); err != nil {
			return audio.Snippet{}, err
		}
	}

	out := d.ready[0]
	d.ready = d.ready[1:]
	return out, nil
}

func (d *detector) scan(s audio.Snippet) error {
	channels := s.Sample.Channels()
	if d.channel >= channels && s.Sample.Frames() > 0 {
		return fmt.Errorf("channel %d of %d: %w", d.channel, channels, ErrChannelOutOfRange)
	}

	for i := range s.Sample.Frames() {
		v := s.Sample.Frame(i)[d.channel]

		if d.active {
			d.level.Add(v)
			d.push(v)
			continue
		}

		evicted := d.level.Oldest()
		level, roc := d.level.Add(v)
		if roc > d.cfg.RocThreshold && level > d.cfg.LevelThreshold {
			d.active = true
			d.start = s.Start + audio.FramesToTicks(int64(i), audio.InternalRate) - d.lead

			d.capture = make([]float64, 0, max(d.cfg.CaptureLength, d.cfg.SmoothingSize)+1)
			d.capture = append(d.capture, evicted)
			d.capture = d.level.AppendTo(d.capture)
			d.capture = d.capture[:len(d.capture)-1] // v is pushed below
			d.push(v)
		}
	}
	return nil
}

func (d *detector) push(v float64) {
	d.capture = append(d.capture, v)
	if len(d.capture) <= d.cfg.CaptureLength {
		return
	}

	sample, _ := audio.NewSample(1, d.capture)
	d.ready = append(d.ready, audio.Snippet{Start: d.start, Sample: sample})
	d.capture, d.active = nil, false
}

func (d *detector) Close() error {
	d.capture, d.ready = nil, nil
	return d.src.Close()
}
