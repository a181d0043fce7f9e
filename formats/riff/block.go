// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the size of a chunk header: 4 byte tag and uint32 size.
const HeaderSize = 8

// Block is a region of a RIFF file starting at Position. Every accessor seeks
// to an absolute offset before reading or writing, so no cursor state is
// shared between calls.
type Block struct {
	f        io.ReadSeeker
	Position int64
}

// NewBlock returns a block at position of f. Writes need f to also implement
// io.Writer.
func NewBlock(f io.ReadSeeker, position int64) Block {
	return Block{f: f, Position: position}
}

func (b Block) seek(pos int64) error {
	if _, err := b.f.Seek(b.Position+pos, io.SeekStart); err != nil {
		return fmt.Errorf("seek to %d: %w", b.Position+pos, err)
	}
	return nil
}

// ReadBytes reads n bytes at offset pos within the block.
func (b Block) ReadBytes(pos int64, n int) ([]byte, error) {
	if err := b.seek(pos); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(b.f, buf); err != nil {
		return nil, fmt.Errorf("read %d bytes at %d: %w", n, b.Position+pos, err)
	}
	return buf, nil
}

// WriteBytes writes data at offset pos within the block.
func (b Block) WriteBytes(pos int64, data []byte) error {
	w, ok := b.f.(io.Writer)
	if !ok {
		return ErrReadOnly
	}
	if err := b.seek(pos); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %d bytes at %d: %w", len(data), b.Position+pos, err)
	}
	return nil
}

func (b Block) ReadUint8(pos int64) (uint8, error) {
	buf, err := b.ReadBytes(pos, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (b Block) ReadUint16(pos int64) (uint16, error) {
	buf, err := b.ReadBytes(pos, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

func (b Block) ReadUint32(pos int64) (uint32, error) {
	buf, err := b.ReadBytes(pos, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (b Block) WriteUint8(pos int64, v uint8) error {
	return b.WriteBytes(pos, []byte{v})
}

func (b Block) WriteUint16(pos int64, v uint16) error {
	return b.WriteBytes(pos, binary.LittleEndian.AppendUint16(nil, v))
}

func (b Block) WriteUint32(pos int64, v uint32) error {
	return b.WriteBytes(pos, binary.LittleEndian.AppendUint32(nil, v))
}

// ReadTag reads a 4 byte ASCII tag at pos.
func (b Block) ReadTag(pos int64) (string, error) {
	buf, err := b.ReadBytes(pos, 4)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteTag writes a 4 byte ASCII tag at pos.
func (b Block) WriteTag(pos int64, tag string) error {
	if len(tag) != 4 {
		return fmt.Errorf("%q: %w", tag, ErrInvalidTag)
	}
	return b.WriteBytes(pos, []byte(tag))
}

// Tag is the chunk tag stored at the start of the block.
func (b Block) Tag() (string, error) { return b.ReadTag(0) }

// Size is the payload size stored in the block header.
func (b Block) Size() (uint32, error) { return b.ReadUint32(4) }

// SetSize overwrites the payload size in the block header.
func (b Block) SetSize(n uint32) error { return b.WriteUint32(4, n) }

// End is the absolute offset just past the block payload.
func (b Block) End() (int64, error) {
	size, err := b.Size()
	if err != nil {
		return 0, err
	}
	return b.Position + int64(size) + HeaderSize, nil
}

// WriteHeader writes tag and size at the start of the block.
func (b Block) WriteHeader(tag string, size uint32) error {
	if err := b.WriteTag(0, tag); err != nil {
		return err
	}
	return b.SetSize(size)
}
