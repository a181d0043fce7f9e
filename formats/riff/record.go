// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

const (
	// RIFFTag is the tag of the top-level record.
	RIFFTag = "RIFF"
	// RecordHeaderSize covers "RIFF", the record size and the form type.
	RecordHeaderSize = 12
)

// ChunkHeader locates one chunk inside a RIFF record.
type ChunkHeader struct {
	Tag      string
	Position int64
	Size     uint32
}

// Block returns the chunk as a Block on f.
func (c ChunkHeader) Block(f io.ReadSeeker) Block { return NewBlock(f, c.Position) }

// Record is the top-level RIFF record of a file.
type Record struct {
	Block
}

// NewRecord returns the record starting at position of f.
func NewRecord(f io.ReadSeeker, position int64) *Record {
	return &Record{Block: NewBlock(f, position)}
}

// FormType reads the 4 byte form type following the record header.
func (r *Record) FormType() (string, error) { return r.ReadTag(8) }

// WriteHeader writes "RIFF", a zero size placeholder and form. It returns the
// absolute offset where the first chunk goes.
func (r *Record) WriteHeader(form string) (int64, error) {
	if err := r.Block.WriteHeader(RIFFTag, 0); err != nil {
		return 0, err
	}
	if err := r.WriteTag(8, form); err != nil {
		return 0, err
	}
	return r.Position + RecordHeaderSize, nil
}

// Chunks walks the chunks of the record in file order. The walk stops at the
// first error; a chunk whose header or payload runs past the record end is
// reported as ErrTruncatedChunk. The zero pad byte following an odd-sized
// chunk is skipped. Writers that omit it are still read, since a chunk tag
// never starts with a zero byte.
func (r *Record) Chunks() iter.Seq2[ChunkHeader, error] {
	return func(yield func(ChunkHeader, error) bool) {
		tag, err := r.Tag()
		if err != nil {
			yield(ChunkHeader{}, err)
			return
		}
		if tag != RIFFTag {
			yield(ChunkHeader{}, fmt.Errorf("tag %q: %w", tag, ErrNotRIFF))
			return
		}
		end, err := r.End()
		if err != nil {
			yield(ChunkHeader{}, err)
			return
		}

		pos := r.Position + RecordHeaderSize
		for pos < end {
			if pos+HeaderSize > end {
				yield(ChunkHeader{}, fmt.Errorf("header at %d: %w", pos, ErrTruncatedChunk))
				return
			}
			b := NewBlock(r.f, pos)
			tag, err := b.Tag()
			if err != nil {
				yield(ChunkHeader{}, truncated(pos, err))
				return
			}
			size, err := b.Size()
			if err != nil {
				yield(ChunkHeader{}, truncated(pos, err))
				return
			}
			next := pos + HeaderSize + int64(size)
			if next > end {
				yield(ChunkHeader{}, fmt.Errorf("chunk %q at %d needs %d bytes: %w", tag, pos, size, ErrTruncatedChunk))
				return
			}
			if !yield(ChunkHeader{Tag: tag, Position: pos, Size: size}, nil) {
				return
			}
			if pos, err = r.skipPad(next, size, end); err != nil {
				yield(ChunkHeader{}, err)
				return
			}
		}
	}
}

// Find returns every chunk tagged tag, in file order, or ErrChunkNotFound.
func (r *Record) Find(tag string) ([]ChunkHeader, error) {
	var out []ChunkHeader
	for c, err := range r.Chunks() {
		if err != nil {
			return nil, err
		}
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%q: %w", tag, ErrChunkNotFound)
	}
	return out, nil
}

// skipPad returns where the chunk after one ending at next starts.
func (r *Record) skipPad(next int64, size uint32, end int64) (int64, error) {
	if size%2 == 0 || next >= end {
		return next, nil
	}
	b, err := NewBlock(r.f, next).ReadUint8(0)
	if err != nil {
		return 0, truncated(next, err)
	}
	if b == 0 {
		return next + 1, nil
	}
	return next, nil
}

// truncated marks a short read during the walk as a malformed file rather
// than a plain I/O failure.
func truncated(pos int64, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("header at %d: %w: %w", pos, ErrTruncatedChunk, err)
	}
	return err
}
