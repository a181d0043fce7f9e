// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/clicksplat/audio"
)

// MockSource is a test helper that generates Snippets at audio.InternalRate.
// It implements pipeline.Stream[audio.Snippet].
type MockSource struct {
	channels    int
	totalFrames int
	chunkFrames int
	generated   int
	closed      bool
	waveform    func(frame int, channel int) float64
}

// NewMockSource creates a new mock source of totalFrames frames, emitted in
// snippets of chunkFrames frames. waveform returns the value of a frame and
// channel.
func NewMockSource(channels, totalFrames, chunkFrames int, waveform func(frame int, channel int) float64) *MockSource {
	return &MockSource{
		channels:    channels,
		totalFrames: totalFrames,
		chunkFrames: max(chunkFrames, 1),
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(channels, totalFrames, chunkFrames int) *MockSource {
	return NewMockSource(channels, totalFrames, chunkFrames, func(int, int) float64 { return 0 })
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(channels, totalFrames, chunkFrames int, frequency float64) *MockSource {
	return NewMockSource(channels, totalFrames, chunkFrames, func(frame int, _ int) float64 {
		t := float64(frame) / audio.InternalRate
		return math.Sin(2 * math.Pi * frequency * t)
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(channels, totalFrames, chunkFrames int, value float64) *MockSource {
	return NewMockSource(channels, totalFrames, chunkFrames, func(int, int) float64 { return value })
}

// NewClickSource creates a mono source of silence with a burst of amplitude
// lasting width frames at each of the given frame offsets.
func NewClickSource(totalFrames, chunkFrames, width int, amplitude float64, at ...int) *MockSource {
	return NewMockSource(1, totalFrames, chunkFrames, func(frame int, _ int) float64 {
		for _, a := range at {
			if frame >= a && frame < a+width {
				return amplitude
			}
		}
		return 0
	})
}

// Reset resets the generated frame counter to allow re-reading.
func (m *MockSource) Reset() {
	m.generated = 0
	m.closed = false
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

func (m *MockSource) Next() (audio.Snippet, error) {
	if m.closed || m.generated >= m.totalFrames {
		return audio.Snippet{}, io.EOF
	}

	n := min(m.chunkFrames, m.totalFrames-m.generated)
	data := make([]float64, n*m.channels)
	for frame := range n {
		for ch := range m.channels {
			data[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	sample, err := audio.NewSample(m.channels, data)
	if err != nil {
		return audio.Snippet{}, err
	}

	start := audio.FramesToTicks(int64(m.generated), audio.InternalRate)
	m.generated += n
	return audio.Snippet{Start: start, Sample: sample}, nil
}
