// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"iter"

	goaudio "github.com/go-audio/audio"
)

const (
	// InternalRate is the sample rate of every Sample inside a pipeline.
	InternalRate = 48000
	// TickResolution is the number of timestamp ticks per second.
	TickResolution = 1_000_000
)

// FramesToTicks converts a frame count at rate into ticks, rounding down.
func FramesToTicks(frames int64, rate int) int64 {
	return frames * TickResolution / int64(rate)
}

// TicksToFrames converts ticks into a frame count at rate, rounding down.
func TicksToFrames(ticks int64, rate int) int64 {
	return ticks * int64(rate) / TickResolution
}

// Sample is a block of multi-channel audio at InternalRate. Frames are stored
// interleaved in one owned buffer; every frame has the same channel count.
type Sample struct {
	channels int
	data     []float64
}

// NewSample wraps interleaved data. The slice is owned by the Sample from
// then on.
func NewSample(channels int, data []float64) (Sample, error) {
	if channels < 1 {
		return Sample{}, ErrInvalidChannelCount
	}
	if len(data)%channels != 0 {
		return Sample{}, fmt.Errorf("%d values for %d channels: %w", len(data), channels, ErrChannelMismatch)
	}
	return Sample{channels: channels, data: data}, nil
}

// FromFrames copies a frame-major slice into a Sample.
func FromFrames(frames [][]float64) (Sample, error) {
	if len(frames) == 0 {
		return Sample{}, nil
	}
	channels := len(frames[0])
	if channels < 1 {
		return Sample{}, ErrInvalidChannelCount
	}
	data := make([]float64, 0, len(frames)*channels)
	for i, f := range frames {
		if len(f) != channels {
			return Sample{}, fmt.Errorf("frame %d has %d channels, want %d: %w", i, len(f), channels, ErrChannelMismatch)
		}
		data = append(data, f...)
	}
	return Sample{channels: channels, data: data}, nil
}

// FromChannels interleaves per-channel slices of equal length into a Sample.
func FromChannels(channels [][]float64) (Sample, error) {
	if len(channels) == 0 {
		return Sample{}, ErrInvalidChannelCount
	}
	frames := len(channels[0])
	for c, ch := range channels {
		if len(ch) != frames {
			return Sample{}, fmt.Errorf("channel %d has %d frames, want %d: %w", c, len(ch), frames, ErrChannelMismatch)
		}
	}
	n := len(channels)
	data := make([]float64, frames*n)
	for c, ch := range channels {
		for i, v := range ch {
			data[i*n+c] = v
		}
	}
	return Sample{channels: n, data: data}, nil
}

// Channels is the number of values per frame. An empty Sample built from no
// frames reports 0.
func (s Sample) Channels() int { return s.channels }

// Frames is the number of frames.
func (s Sample) Frames() int {
	if s.channels == 0 {
		return 0
	}
	return len(s.data) / s.channels
}

// Duration of the sample in ticks.
func (s Sample) Duration() int64 {
	return FramesToTicks(int64(s.Frames()), InternalRate)
}

// Data returns the interleaved values. The slice aliases the Sample.
func (s Sample) Data() []float64 { return s.data }

// Frame returns frame i as a view into the Sample.
func (s Sample) Frame(i int) []float64 {
	return s.data[i*s.channels : (i+1)*s.channels : (i+1)*s.channels]
}

// Slice returns frames [from, to) as a view into the Sample.
func (s Sample) Slice(from, to int) Sample {
	return Sample{channels: s.channels, data: s.data[from*s.channels : to*s.channels]}
}

// Clone returns a deep copy.
func (s Sample) Clone() Sample {
	return Sample{channels: s.channels, data: append([]float64(nil), s.data...)}
}

// Append returns a new Sample holding the frames of s followed by those of o.
// An empty Sample adopts the channel count of the other side.
func (s Sample) Append(o Sample) (Sample, error) {
	switch {
	case s.Frames() == 0 && s.channels == 0:
		return o.Clone(), nil
	case o.Frames() == 0:
		return s.Clone(), nil
	case s.channels != o.channels:
		return Sample{}, fmt.Errorf("append %d channels to %d: %w", o.channels, s.channels, ErrChannelMismatch)
	}
	data := make([]float64, 0, len(s.data)+len(o.data))
	data = append(data, s.data...)
	data = append(data, o.data...)
	return Sample{channels: s.channels, data: data}, nil
}

// Channel returns a strided view over channel c.
func (s Sample) Channel(c int) ChannelView {
	return ChannelView{s: s, c: c}
}

// FromFloatBuffer copies a go-audio buffer into a Sample. The buffer's sample
// rate is not converted.
func FromFloatBuffer(buf *goaudio.FloatBuffer) (Sample, error) {
	if buf == nil || buf.Format == nil {
		return Sample{}, ErrInvalidChannelCount
	}
	return NewSample(buf.Format.NumChannels, append([]float64(nil), buf.Data...))
}

// ChannelView reads one channel of a Sample without copying it.
type ChannelView struct {
	s Sample
	c int
}

// Len is the number of values in the channel.
func (v ChannelView) Len() int { return v.s.Frames() }

// At returns the value of frame i.
func (v ChannelView) At(i int) float64 { return v.s.data[i*v.s.channels+v.c] }

// All yields (frame index, value) pairs in order.
func (v ChannelView) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i := range v.Len() {
			if !yield(i, v.At(i)) {
				return
			}
		}
	}
}

// Values copies the channel into a new slice.
func (v ChannelView) Values() []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// Snippet is a Sample positioned in time. Start is the tick of its first
// frame, measured from the beginning of the source stream.
type Snippet struct {
	Start  int64
	Sample Sample
}

// End is the tick just after the last frame.
func (s Snippet) End() int64 { return s.Start + s.Sample.Duration() }
