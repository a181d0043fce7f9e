// SPDX-License-Identifier: EPL-2.0

package pcm

import "fmt"

// Format describes interleaved integer PCM data.
type Format struct {
	Channels   int
	SampleRate int
	Depth      BitDepth
}

// BlockAlign is the number of bytes per frame.
func (f Format) BlockAlign() int { return f.Channels * f.Depth.Bytes() }

// Validate checks the format can be decoded or encoded.
func (f Format) Validate() error {
	if f.Channels < 1 || f.SampleRate < 1 {
		return fmt.Errorf("%d channels at %d Hz: %w", f.Channels, f.SampleRate, ErrInvalidFormat)
	}
	if _, err := ParseBitDepth(int(f.Depth)); err != nil {
		return err
	}
	return nil
}

// Option tweaks a Decoder or Encoder.
type Option func(*options)

type options struct {
	legacy16 bool
}

// WithLegacy16BitScale scales 16-bit values by 65536 instead of 32768, for
// bit-exact agreement with data produced by older tooling. Encoding with it
// clamps at half of full scale.
func WithLegacy16BitScale() Option {
	return func(o *options) { o.legacy16 = true }
}

func newCodec(f Format, opts []Option) (codec, error) {
	if err := f.Validate(); err != nil {
		return codec{}, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	c := codec{depth: f.Depth, scale: f.Depth.Scale()}
	if o.legacy16 && f.Depth == Depth16 {
		c.scale = LegacyScale16
	}
	return c, nil
}
