// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/ik5/clicksplat/internal/audiotest"
	"github.com/ik5/clicksplat/pipeline"
)

func TestBlock_ReadWriteNumbers(t *testing.T) {
	t.Parallel()

	f := audiotest.NewFile(make([]byte, 16))
	b := NewBlock(f, 4)

	if err := b.WriteUint8(0, 0xAB); err != nil {
		t.Fatalf("WriteUint8() error = %v", err)
	}
	if err := b.WriteUint16(1, 0x1234); err != nil {
		t.Fatalf("WriteUint16() error = %v", err)
	}
	if err := b.WriteUint32(3, 0xDEADBEEF); err != nil {
		t.Fatalf("WriteUint32() error = %v", err)
	}

	want := []byte{0, 0, 0, 0, 0xAB, 0x34, 0x12, 0xEF, 0xBE, 0xAD, 0xDE}
	if got := f.Bytes()[:len(want)]; !bytes.Equal(got, want) {
		t.Errorf("bytes = % x, want % x", got, want)
	}

	if v, _ := b.ReadUint8(0); v != 0xAB {
		t.Errorf("ReadUint8() = %#x, want 0xab", v)
	}
	if v, _ := b.ReadUint16(1); v != 0x1234 {
		t.Errorf("ReadUint16() = %#x, want 0x1234", v)
	}
	if v, _ := b.ReadUint32(3); v != 0xDEADBEEF {
		t.Errorf("ReadUint32() = %#x, want 0xdeadbeef", v)
	}
}

func TestBlock_ReadOnly(t *testing.T) {
	t.Parallel()

	b := NewBlock(bytes.NewReader(make([]byte, 8)), 0)
	if err := b.WriteUint8(0, 1); !errors.Is(err, ErrReadOnly) {
		t.Errorf("WriteUint8() error = %v, want ErrReadOnly", err)
	}
}

func TestBlock_WriteTagLength(t *testing.T) {
	t.Parallel()

	b := NewBlock(audiotest.NewFile(nil), 0)
	if err := b.WriteTag(0, "toolong"); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("WriteTag() error = %v, want ErrInvalidTag", err)
	}
}

func TestBlock_HeaderAndEnd(t *testing.T) {
	t.Parallel()

	f := audiotest.NewFile(nil)
	b := NewBlock(f, 10)
	if err := b.WriteHeader("abcd", 20); err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}

	if tag, _ := b.Tag(); tag != "abcd" {
		t.Errorf("Tag() = %q, want abcd", tag)
	}
	if size, _ := b.Size(); size != 20 {
		t.Errorf("Size() = %d, want 20", size)
	}
	if end, _ := b.End(); end != 38 {
		t.Errorf("End() = %d, want 38", end)
	}
}

func TestRecord_Chunks(t *testing.T) {
	t.Parallel()

	data := audiotest.RIFF("TEST",
		audiotest.Chunk("one ", []byte{1, 2}),
		audiotest.Chunk("two ", nil),
		audiotest.Chunk("one ", []byte{3}),
	)
	r := NewRecord(bytes.NewReader(data), 0)

	if form, _ := r.FormType(); form != "TEST" {
		t.Errorf("FormType() = %q, want TEST", form)
	}

	var got []ChunkHeader
	for c, err := range r.Chunks() {
		if err != nil {
			t.Fatalf("Chunks() error = %v", err)
		}
		got = append(got, c)
	}
	want := []ChunkHeader{
		{Tag: "one ", Position: 12, Size: 2},
		{Tag: "two ", Position: 22, Size: 0},
		{Tag: "one ", Position: 30, Size: 1},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Chunks() = %+v, want %+v", got, want)
	}

	found, err := r.Find("one ")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(found) != 2 {
		t.Errorf("Find() returned %d chunks, want 2", len(found))
	}
	if _, err := r.Find("none"); !errors.Is(err, ErrChunkNotFound) {
		t.Errorf("Find() error = %v, want ErrChunkNotFound", err)
	}
}

func TestRecord_ChunksStopEarly(t *testing.T) {
	t.Parallel()

	data := audiotest.RIFF("TEST", audiotest.Chunk("a   ", nil), audiotest.Chunk("b   ", nil))
	r := NewRecord(bytes.NewReader(data), 0)

	n := 0
	for range r.Chunks() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("visited %d chunks, want 1", n)
	}
}

func TestRecord_ChunksErrors(t *testing.T) {
	t.Parallel()

	// Chunk declares 50 bytes but the record ends after 4.
	overrun := audiotest.RIFF("TEST")
	overrun = append(overrun, []byte("big \x32\x00\x00\x00abcd")...)
	setSize(overrun)

	// Record size claims more than the file holds.
	short := audiotest.RIFF("TEST", audiotest.Chunk("a   ", nil))
	short[4] = 100

	// Three bytes of a header left before the record end.
	partial := audiotest.RIFF("TEST")
	partial = append(partial, 'x', 'y', 'z')
	setSize(partial)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("LIST\x04\x00\x00\x00TEST"), ErrNotRIFF},
		{"payload overrun", overrun, ErrTruncatedChunk},
		{"file shorter than record", short, ErrTruncatedChunk},
		{"partial header", partial, ErrTruncatedChunk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewRecord(bytes.NewReader(tt.data), 0)
			var err error
			for _, e := range r.Chunks() {
				if e != nil {
					err = e
				}
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Chunks() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRecord_ChunksPadding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		chunks [][]byte
		want   []ChunkHeader
	}{
		{
			name:   "pad after last chunk",
			chunks: [][]byte{audiotest.Chunk("a   ", nil), audiotest.PaddedChunk("data", []byte{1, 2, 3})},
			want:   []ChunkHeader{{Tag: "a   ", Position: 12, Size: 0}, {Tag: "data", Position: 20, Size: 3}},
		},
		{
			name:   "pad between chunks",
			chunks: [][]byte{audiotest.PaddedChunk("odd ", []byte{7}), audiotest.Chunk("b   ", []byte{1, 2})},
			want:   []ChunkHeader{{Tag: "odd ", Position: 12, Size: 1}, {Tag: "b   ", Position: 22, Size: 2}},
		},
		{
			name:   "odd chunk without pad",
			chunks: [][]byte{audiotest.Chunk("odd ", []byte{7}), audiotest.Chunk("b   ", nil)},
			want:   []ChunkHeader{{Tag: "odd ", Position: 12, Size: 1}, {Tag: "b   ", Position: 21, Size: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewRecord(bytes.NewReader(audiotest.RIFF("TEST", tt.chunks...)), 0)
			var got []ChunkHeader
			for c, err := range r.Chunks() {
				if err != nil {
					t.Fatalf("Chunks() error = %v", err)
				}
				got = append(got, c)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Chunks() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecord_WriteHeader(t *testing.T) {
	t.Parallel()

	f := audiotest.NewFile(nil)
	r := NewRecord(f, 0)
	pos, err := r.WriteHeader("WAVE")
	if err != nil {
		t.Fatalf("WriteHeader() error = %v", err)
	}
	if pos != 12 {
		t.Errorf("WriteHeader() = %d, want 12", pos)
	}
	if got := string(f.Bytes()); got != "RIFF\x00\x00\x00\x00WAVE" {
		t.Errorf("header = %q", got)
	}
}

func TestDataBlock_Reader(t *testing.T) {
	t.Parallel()

	payload := []byte("0123456789")
	data := audiotest.Chunk(DataTag, payload)
	d := NewDataBlock(bytes.NewReader(data), 0)

	chunks, err := pipeline.Collect(d.Reader(4))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	wantOffsets := []int64{0, 4, 8}
	if len(chunks) != len(wantOffsets) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(wantOffsets))
	}
	var joined []byte
	for i, c := range chunks {
		if c.Offset != wantOffsets[i] {
			t.Errorf("chunk %d offset = %d, want %d", i, c.Offset, wantOffsets[i])
		}
		joined = append(joined, c.Data...)
	}
	if !bytes.Equal(joined, payload) {
		t.Errorf("payload = %q, want %q", joined, payload)
	}
}

func TestDataBlock_ReaderEmpty(t *testing.T) {
	t.Parallel()

	d := NewDataBlock(bytes.NewReader(audiotest.Chunk(DataTag, nil)), 0)
	chunks, err := pipeline.Collect(d.Reader(16))
	if err != nil || len(chunks) != 0 {
		t.Errorf("Collect() = %d chunks, %v; want none", len(chunks), err)
	}
}

func TestDataBlock_WriteAllAndWriter(t *testing.T) {
	t.Parallel()

	f := audiotest.NewFile(nil)
	d := NewDataBlock(f, 0)
	end, err := d.WriteAll(nil)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if end != HeaderSize {
		t.Errorf("WriteAll(nil) = %d, want %d", end, HeaderSize)
	}

	var patched uint32
	w := d.Writer(func(size uint32) error {
		patched = size
		return nil
	})
	if err := w.Write(DataChunk{Offset: 3, Data: []byte("def")}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Write(DataChunk{Offset: 0, Data: []byte("abc")}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if patched != 6 {
		t.Errorf("onClose size = %d, want 6", patched)
	}
	if got := string(f.Bytes()); got != "data\x06\x00\x00\x00abcdef" {
		t.Errorf("chunk = %q", got)
	}
}

func TestDataBlock_WriteAllWithData(t *testing.T) {
	t.Parallel()

	f := audiotest.NewFile(nil)
	end, err := NewDataBlock(f, 4).WriteAll([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if end != 4+HeaderSize+3 {
		t.Errorf("WriteAll() = %d, want %d", end, 4+HeaderSize+3)
	}
}

// setSize rewrites the RIFF size of data to cover all of it.
func setSize(data []byte) {
	n := uint32(len(data) - 8)
	data[4], data[5], data[6], data[7] = byte(n), byte(n>>8), byte(n>>16), byte(n>>24)
}
