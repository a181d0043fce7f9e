// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/formats/riff"
	"github.com/ik5/clicksplat/pipeline"
)

// Decoder turns raw data chunks into snippets at audio.InternalRate. Bytes
// that do not complete a frame are carried over to the next call, as are the
// rate conversion counters, so one Decoder must see the chunks of one stream
// in order.
type Decoder struct {
	format Format
	codec  codec
	carry  []byte
	conv   *audio.RateConverter
}

// NewDecoder returns a decoder for data in format f.
func NewDecoder(f Format, opts ...Option) (*Decoder, error) {
	c, err := newCodec(f, opts)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		format: f,
		codec:  c,
		conv:   audio.NewRateConverter(f.SampleRate, audio.InternalRate),
	}, nil
}

// Format returns the source format.
func (d *Decoder) Format() Format { return d.format }

// Pending is the number of carried-over bytes.
func (d *Decoder) Pending() int { return len(d.carry) }

// Decode converts every whole frame available after appending c to the
// carried-over bytes. The snippet start is the tick of the first carried or
// new byte.
func (d *Decoder) Decode(c riff.DataChunk) audio.Snippet {
	align := d.format.BlockAlign()
	offset := c.Offset - int64(len(d.carry))

	buf := c.Data
	if len(d.carry) > 0 {
		buf = make([]byte, 0, len(d.carry)+len(c.Data))
		buf = append(buf, d.carry...)
		buf = append(buf, c.Data...)
	}

	frames := len(buf) / align
	whole := frames * align
	d.carry = append(d.carry[:0:0], buf[whole:]...)

	values := make([]float64, frames*d.format.Channels)
	d.codec.decode(buf[:whole], values)

	// Channels >= 1 and len(values) is a multiple of it by construction.
	sample, _ := audio.NewSample(d.format.Channels, values)

	return audio.Snippet{
		Start:  offset * audio.TickResolution / (int64(align) * int64(d.format.SampleRate)),
		Sample: d.conv.Convert(sample),
	}
}

// Decode returns a stage decoding data chunks in format f. Each application
// of the stage gets its own Decoder.
func Decode(f Format, opts ...Option) (pipeline.Stage[riff.DataChunk, audio.Snippet], error) {
	if _, err := newCodec(f, opts); err != nil {
		return nil, err
	}
	return func(src pipeline.Stream[riff.DataChunk]) pipeline.Stream[audio.Snippet] {
		dec, _ := NewDecoder(f, opts...)
		return pipeline.Map(func(c riff.DataChunk) (audio.Snippet, error) {
			return dec.Decode(c), nil
		})(src)
	}, nil
}
