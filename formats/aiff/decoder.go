// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/pcm"
	"github.com/ik5/clicksplat/pipeline"
)

// DefaultChunkFrames is the number of file frames read per Snippet.
const DefaultChunkFrames = 8192

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder as a stream of Snippets at the file
// sample rate.
type source struct {
	dec         aiffReader
	sampleRate  int
	channels    int
	scale       float64
	chunkFrames int
	intBuf      *goaudio.IntBuffer
	frames      int64 // file frames read so far
	done        bool
}

func newSource(dec aiffReader, sampleRate, channels int, depth pcm.BitDepth, chunkFrames int) *source {
	return &source{
		dec:         dec,
		sampleRate:  sampleRate,
		channels:    channels,
		scale:       depth.Scale(),
		chunkFrames: max(chunkFrames, 1),
	}
}

// newStream converts the snippets of a source to audio.InternalRate.
func newStream(dec aiffReader, sampleRate, channels int, depth pcm.BitDepth, chunkFrames int) pipeline.Stream[audio.Snippet] {
	src := newSource(dec, sampleRate, channels, depth, chunkFrames)
	return audio.Resample(sampleRate, audio.InternalRate)(src)
}

func (s *source) Close() error {
	s.done = true
	return nil
}

func (s *source) Next() (audio.Snippet, error) {
	if s.done {
		return audio.Snippet{}, io.EOF
	}

	want := s.chunkFrames * s.channels
	if s.intBuf == nil {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return audio.Snippet{}, fmt.Errorf("reading aiff samples: %w", err)
	}
	// A trailing partial frame cannot be represented.
	n -= n % s.channels
	if n == 0 {
		s.done = true
		return audio.Snippet{}, io.EOF
	}
	if err == io.EOF || n < want {
		s.done = true
	}

	fb := &goaudio.FloatBuffer{
		Format: &goaudio.Format{NumChannels: s.channels, SampleRate: s.sampleRate},
		Data:   make([]float64, n),
	}
	for i, v := range s.intBuf.Data[:n] {
		fb.Data[i] = float64(v) / s.scale
	}
	sample, err := audio.FromFloatBuffer(fb)
	if err != nil {
		return audio.Snippet{}, err
	}

	start := audio.FramesToTicks(s.frames, s.sampleRate)
	s.frames += int64(n / s.channels)
	return audio.Snippet{Start: start, Sample: sample}, nil
}

// Decoder implements audio.Decoder for AIFF files.
type Decoder struct {
	// ChunkFrames is the read size in file frames. Zero uses
	// DefaultChunkFrames.
	ChunkFrames int
}

func (d Decoder) Decode(r io.ReadSeeker) (pipeline.Stream[audio.Snippet], error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	depth, err := pcm.ParseBitDepth(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	n := d.ChunkFrames
	if n <= 0 {
		n = DefaultChunkFrames
	}
	return newStream(dec, format.SampleRate, format.NumChannels, depth, n), nil
}
