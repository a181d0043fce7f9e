// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	goriff "github.com/go-audio/riff"
	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/formats/riff"
	"github.com/ik5/clicksplat/pcm"
	"github.com/ik5/clicksplat/pipeline"
)

// File is an opened WAV file with its fmt and data chunks located.
type File struct {
	r      io.ReadSeeker
	closer io.Closer

	Format Format
	Record *riff.Record
	data   *riff.DataBlock
	pcm    pcm.Format
}

// Open opens the WAV file at path. The caller must Close it.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	wf, err := OpenReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	wf.closer = f
	return wf, nil
}

// OpenReader parses the RIFF/WAVE structure of r. Exactly one fmt chunk and
// one data chunk must be present and the format must be linear PCM.
func OpenReader(r io.ReadSeeker) (*File, error) {
	if err := checkHeader(r); err != nil {
		return nil, err
	}

	record := riff.NewRecord(r, 0)
	var fmtChunk, dataChunk *riff.ChunkHeader
	for c, err := range record.Chunks() {
		if err != nil {
			return nil, err
		}
		switch c.Tag {
		case FmtTag:
			if fmtChunk != nil {
				return nil, fmt.Errorf("%q at %d: %w", c.Tag, c.Position, ErrDuplicateChunk)
			}
			fmtChunk = &c
		case riff.DataTag:
			if dataChunk != nil {
				return nil, fmt.Errorf("%q at %d: %w", c.Tag, c.Position, ErrDuplicateChunk)
			}
			dataChunk = &c
		}
	}
	if fmtChunk == nil {
		return nil, ErrMissingFmtChunk
	}
	if dataChunk == nil {
		return nil, ErrMissingDataChunk
	}

	format, err := readFormat(fmtChunk.Block(r), fmtChunk.Size)
	if err != nil {
		return nil, err
	}
	pf, err := format.PCM()
	if err != nil {
		return nil, err
	}

	return &File{
		r:      r,
		Format: format,
		Record: record,
		data:   riff.NewDataBlock(r, dataChunk.Position),
		pcm:    pf,
	}, nil
}

// checkHeader verifies the RIFF magic and the WAVE form type.
func checkHeader(r io.ReadSeeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	p := goriff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotWavFile, errors.Join(riff.ErrNotRIFF, err))
	}
	if p.Format != goriff.WavFormatID {
		return fmt.Errorf("form %q: %w", p.Format[:], ErrNotWavFile)
	}
	return nil
}

// PCM returns the sample layout of the data chunk.
func (f *File) PCM() pcm.Format { return f.pcm }

// DataSize is the payload size of the data chunk in bytes.
func (f *File) DataSize() (uint32, error) { return f.data.Size() }

// Frames is the number of whole frames stored in the data chunk.
func (f *File) Frames() (int, error) {
	size, err := f.DataSize()
	if err != nil {
		return 0, err
	}
	return int(size) / f.pcm.BlockAlign(), nil
}

// Data streams the raw payload of the data chunk.
func (f *File) Data(bufSize int) pipeline.Stream[riff.DataChunk] {
	return f.data.Reader(bufSize)
}

// Stream decodes the data chunk into Snippets at the internal rate. Each raw
// read covers chunkFrames frames of the file.
func (f *File) Stream(chunkFrames int, opts ...pcm.Option) (pipeline.Stream[audio.Snippet], error) {
	decode, err := pcm.Decode(f.pcm, opts...)
	if err != nil {
		return nil, err
	}
	return decode(f.Data(max(chunkFrames, 1) * f.pcm.BlockAlign())), nil
}

// ReadAll decodes the whole data chunk into a single Sample.
func (f *File) ReadAll(opts ...pcm.Option) (audio.Sample, error) {
	stream, err := f.Stream(DefaultChunkFrames, opts...)
	if err != nil {
		return audio.Sample{}, err
	}
	snippets, err := pipeline.Collect(stream)
	if err != nil {
		return audio.Sample{}, err
	}
	out, err := audio.NewSample(f.pcm.Channels, nil)
	if err != nil {
		return audio.Sample{}, err
	}
	for _, s := range snippets {
		if out, err = out.Append(s.Sample); err != nil {
			return audio.Sample{}, err
		}
	}
	return out, nil
}

// Close closes the underlying file when it was opened by Open.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}
