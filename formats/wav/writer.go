// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/formats/riff"
	"github.com/ik5/clicksplat/pcm"
	"github.com/ik5/clicksplat/pipeline"
)

// Writer lays out a RIFF/WAVE file with a fmt chunk followed by a data chunk.
// It is a sink of raw DataChunks; Close stores the final data size and the
// RIFF record size.
type Writer struct {
	w      io.ReadWriteSeeker
	closer io.Closer

	Format Format
	pcm    pcm.Format
	record *riff.Record
	data   *riff.DataBlock
	sink   pipeline.Sink[riff.DataChunk]
	closed bool
}

// Create creates or truncates the file at path and writes the WAV headers.
func Create(path string, format Format) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	w, err := NewWriter(f, format)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	w.closer = f
	return w, nil
}

// NewWriter writes the WAV headers to w starting at offset 0.
func NewWriter(w io.ReadWriteSeeker, format Format) (*Writer, error) {
	pf, err := format.PCM()
	if err != nil {
		return nil, err
	}

	record := riff.NewRecord(w, 0)
	pos, err := record.WriteHeader(WaveForm)
	if err != nil {
		return nil, fmt.Errorf("failed to write RIFF header: %w", err)
	}
	if pos, err = writeFormat(riff.NewBlock(w, pos), format); err != nil {
		return nil, fmt.Errorf("failed to write fmt chunk: %w", err)
	}
	data := riff.NewDataBlock(w, pos)
	if _, err := data.WriteAll(nil); err != nil {
		return nil, fmt.Errorf("failed to write data chunk: %w", err)
	}

	wr := &Writer{
		w:      w,
		Format: format,
		pcm:    pf,
		record: record,
		data:   data,
	}
	wr.sink = data.Writer(wr.finalize)
	return wr, nil
}

// finalize pads an odd-sized data chunk with a zero byte and sets the RIFF
// size to the total file size minus 8. The pad is not part of the data size.
func (w *Writer) finalize(dataSize uint32) error {
	total := w.data.Position + riff.HeaderSize + int64(dataSize)
	if dataSize%2 != 0 {
		if err := w.data.WriteUint8(riff.HeaderSize+int64(dataSize), 0); err != nil {
			return fmt.Errorf("failed to write pad byte: %w", err)
		}
		total++
	}
	return w.record.SetSize(uint32(total - riff.HeaderSize - w.record.Position))
}

// PCM returns the sample layout of the data chunk.
func (w *Writer) PCM() pcm.Format { return w.pcm }

// Write places c at its offset within the data chunk.
func (w *Writer) Write(c riff.DataChunk) error {
	if w.closed {
		return ErrWriterClosed
	}
	return w.sink.Write(c)
}

// Close patches the chunk sizes and closes the file if Create opened it.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.sink.Close()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Snippets returns a sink encoding Snippets into the data chunk. Closing it
// closes the Writer.
func (w *Writer) Snippets(opts ...pcm.Option) (pipeline.Sink[audio.Snippet], error) {
	return pcm.EncodeTo(w.pcm, w, opts...)
}

// WriteFile encodes every snippet of src into a new WAV file at path.
func WriteFile(path string, format Format, src pipeline.Stream[audio.Snippet], opts ...pcm.Option) error {
	w, err := Create(path, format)
	if err != nil {
		_ = src.Close()
		return err
	}
	sink, err := w.Snippets(opts...)
	if err != nil {
		_ = src.Close()
		_ = w.Close()
		return err
	}
	for {
		s, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = src.Close()
			_ = w.Close()
			return err
		}
		if err := sink.Write(s); err != nil {
			_ = src.Close()
			_ = w.Close()
			return err
		}
	}
	if err := src.Close(); err != nil {
		_ = w.Close()
		return err
	}
	return sink.Close()
}
