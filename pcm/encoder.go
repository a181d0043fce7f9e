// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/formats/riff"
	"github.com/ik5/clicksplat/pipeline"
)

// Encoder is the mirror of Decoder: it fits snippets to the target channel
// count, converts them from audio.InternalRate to the target rate and packs
// them into data chunks placed by their start tick.
type Encoder struct {
	format Format
	codec  codec
	conv   *audio.RateConverter
}

// NewEncoder returns an encoder producing data in format f.
func NewEncoder(f Format, opts ...Option) (*Encoder, error) {
	c, err := newCodec(f, opts)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		format: f,
		codec:  c,
		conv:   audio.NewRateConverter(audio.InternalRate, f.SampleRate),
	}, nil
}

// Format returns the target format.
func (e *Encoder) Format() Format { return e.format }

// Encode converts s into a data chunk. Extra channels are dropped and missing
// ones filled with silence.
func (e *Encoder) Encode(s audio.Snippet) (riff.DataChunk, error) {
	if s.Start < 0 {
		return riff.DataChunk{}, fmt.Errorf("start %d: %w", s.Start, ErrNegativeStart)
	}

	sample := e.conv.Convert(e.fit(s.Sample))
	data := make([]byte, len(sample.Data())*e.format.Depth.Bytes())
	e.codec.encode(sample.Data(), data)

	frame := s.Start * int64(e.format.SampleRate) / audio.TickResolution
	return riff.DataChunk{
		Offset: frame * int64(e.format.BlockAlign()),
		Data:   data,
	}, nil
}

func (e *Encoder) fit(s audio.Sample) audio.Sample {
	channels := e.format.Channels
	if s.Frames() == 0 {
		return audio.Sample{}
	}
	if s.Channels() == channels {
		return s
	}

	frames := s.Frames()
	keep := min(channels, s.Channels())
	data := make([]float64, frames*channels)
	for i := range frames {
		copy(data[i*channels:i*channels+keep], s.Frame(i)[:keep])
	}
	out, _ := audio.NewSample(channels, data)
	return out
}

// Encode returns a stage encoding snippets into data chunks in format f.
func Encode(f Format, opts ...Option) (pipeline.Stage[audio.Snippet, riff.DataChunk], error) {
	if _, err := newCodec(f, opts); err != nil {
		return nil, err
	}
	return func(src pipeline.Stream[audio.Snippet]) pipeline.Stream[riff.DataChunk] {
		enc, _ := NewEncoder(f, opts...)
		return pipeline.Map(enc.Encode)(src)
	}, nil
}

// EncodeTo returns a sink encoding snippets into dst. Closing it closes dst.
func EncodeTo(f Format, dst pipeline.Sink[riff.DataChunk], opts ...Option) (pipeline.Sink[audio.Snippet], error) {
	enc, err := NewEncoder(f, opts...)
	if err != nil {
		return nil, err
	}
	return &encodeSink{enc: enc, dst: dst}, nil
}

type encodeSink struct {
	enc *Encoder
	dst pipeline.Sink[riff.DataChunk]
}

func (s *encodeSink) Write(sn audio.Snippet) error {
	c, err := s.enc.Encode(sn)
	if err != nil {
		return err
	}
	return s.dst.Write(c)
}

func (s *encodeSink) Close() error { return s.dst.Close() }
