// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/pipeline"
)

// Rechunker regroups a stream of snippets into snippets of exactly size
// frames. Frames left over at the end of the stream stay buffered and are
// never emitted.
type Rechunker struct {
	src     pipeline.Stream[audio.Snippet]
	size    int
	buf     audio.Sample
	first   int64
	started bool
	emitted int64
}

// Rechunk returns a stage emitting snippets of exactly size frames. Starts are
// the first input start plus the ticks covered by the frames emitted before.
func Rechunk(size int) (pipeline.Stage[audio.Snippet, audio.Snippet], error) {
	if size < 1 {
		return nil, fmt.Errorf("%d: %w", size, ErrInvalidChunkSize)
	}
	return func(src pipeline.Stream[audio.Snippet]) pipeline.Stream[audio.Snippet] {
		return NewRechunker(src, size)
	}, nil
}

// NewRechunker wraps src. size must be positive.
func NewRechunker(src pipeline.Stream[audio.Snippet], size int) *Rechunker {
	return &Rechunker{src: src, size: max(size, 1)}
}

// Pending is the number of buffered frames not yet emitted.
func (r *Rechunker) Pending() int { return r.buf.Frames() }

func (r *Rechunker) Next() (audio.Snippet, error) {
	for r.buf.Frames() < r.size {
		s, err := r.src.Next()
		if errors.Is(err, io.EOF) {
			return audio.Snippet{}, io.EOF
		}
		if err != nil {
			return audio.Snippet{}, err
		}
		if !r.started {
			r.first = s.Start
			r.started = true
		}
		if r.buf, err = r.buf.Append(s.Sample); err != nil {
			return audio.Snippet{}, err
		}
	}

	out := r.buf.Slice(0, r.size).Clone()
	r.buf = r.buf.Slice(r.size, r.buf.Frames())

	start := r.first + audio.FramesToTicks(r.emitted, audio.InternalRate)
	r.emitted += int64(r.size)
	return audio.Snippet{Start: start, Sample: out}, nil
}

func (r *Rechunker) Close() error {
	r.buf = audio.Sample{}
	return r.src.Close()
}
