// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/clicksplat/pipeline"
)

// DataTag is the tag of a chunk holding raw sample data.
const DataTag = "data"

// DataChunk is a slice of chunk payload tagged with its byte offset from the
// start of the payload.
type DataChunk struct {
	Offset int64
	Data   []byte
}

// DataBlock is a chunk whose payload is read and written as a stream of
// DataChunks.
type DataBlock struct {
	Block
}

// NewDataBlock returns a data block starting at position of f.
func NewDataBlock(f io.ReadSeeker, position int64) *DataBlock {
	return &DataBlock{Block: NewBlock(f, position)}
}

// WriteAll writes a "data" chunk holding data and returns the absolute offset
// just past it. A nil data writes an empty chunk header to be filled later.
func (d *DataBlock) WriteAll(data []byte) (int64, error) {
	if int64(len(data)) > math.MaxUint32 {
		return 0, fmt.Errorf("%d bytes: %w", len(data), ErrChunkTooLarge)
	}
	if err := d.WriteHeader(DataTag, uint32(len(data))); err != nil {
		return 0, err
	}
	if len(data) > 0 {
		if err := d.WriteBytes(HeaderSize, data); err != nil {
			return 0, err
		}
	}
	return d.Position + HeaderSize + int64(len(data)), nil
}

// Reader streams the payload in buffers of at most bufSize bytes.
func (d *DataBlock) Reader(bufSize int) pipeline.Stream[DataChunk] {
	return &dataReader{block: d, bufSize: int64(max(bufSize, 1)), size: -1}
}

type dataReader struct {
	block   *DataBlock
	bufSize int64
	size    int64
	pos     int64
	closed  bool
}

func (r *dataReader) Next() (DataChunk, error) {
	if r.closed {
		return DataChunk{}, io.EOF
	}
	if r.size < 0 {
		size, err := r.block.Size()
		if err != nil {
			return DataChunk{}, err
		}
		r.size = int64(size)
	}
	if r.pos >= r.size {
		return DataChunk{}, io.EOF
	}

	n := min(r.size-r.pos, r.bufSize)
	buf, err := r.block.ReadBytes(HeaderSize+r.pos, int(n))
	if err != nil {
		return DataChunk{}, err
	}
	chunk := DataChunk{Offset: r.pos, Data: buf}
	r.pos += n
	return chunk, nil
}

func (r *dataReader) Close() error {
	r.closed = true
	return nil
}

// Writer returns a sink placing each DataChunk at its offset within the
// payload. Close stores the furthest byte written as the chunk size and then
// calls onClose, if any, with that size.
func (d *DataBlock) Writer(onClose func(size uint32) error) pipeline.Sink[DataChunk] {
	return &dataWriter{block: d, onClose: onClose}
}

type dataWriter struct {
	block   *DataBlock
	onClose func(size uint32) error
	size    int64
}

func (w *dataWriter) Write(c DataChunk) error {
	if err := w.block.WriteBytes(HeaderSize+c.Offset, c.Data); err != nil {
		return err
	}
	w.size = max(w.size, c.Offset+int64(len(c.Data)))
	return nil
}

func (w *dataWriter) Close() error {
	if w.size > math.MaxUint32 {
		return fmt.Errorf("%d bytes: %w", w.size, ErrChunkTooLarge)
	}
	size := uint32(w.size)
	if err := w.block.SetSize(size); err != nil {
		return err
	}
	if w.onClose != nil {
		return w.onClose(size)
	}
	return nil
}
