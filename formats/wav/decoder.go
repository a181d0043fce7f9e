// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/pcm"
	"github.com/ik5/clicksplat/pipeline"
)

// DefaultChunkFrames is the number of file frames read per raw chunk.
const DefaultChunkFrames = 8192

// Decoder implements audio.Decoder for WAV files.
type Decoder struct {
	// ChunkFrames is the read size in file frames. Zero uses
	// DefaultChunkFrames.
	ChunkFrames int
	Options     []pcm.Option
}

// Decode parses r and streams its data chunk as Snippets. r must stay open
// until the stream is done.
func (d Decoder) Decode(r io.ReadSeeker) (pipeline.Stream[audio.Snippet], error) {
	f, err := OpenReader(r)
	if err != nil {
		return nil, err
	}
	n := d.ChunkFrames
	if n <= 0 {
		n = DefaultChunkFrames
	}
	return f.Stream(n, d.Options...)
}
