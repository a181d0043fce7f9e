// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/clicksplat/formats/riff"
	"github.com/ik5/clicksplat/pcm"
)

const (
	// FormatPCM is the fmt chunk audio format code of linear PCM.
	FormatPCM = 1

	WaveForm = "WAVE"
	FmtTag   = "fmt "

	// fmtSize is the payload size of a plain PCM fmt chunk.
	fmtSize = 16
)

// Format is the PCM descriptor stored in the fmt chunk.
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// NewFormat returns a linear PCM descriptor with the derived fields filled in.
func NewFormat(channels, sampleRate, bitsPerSample int) Format {
	blockAlign := channels * bitsPerSample / 8
	return Format{
		AudioFormat:   FormatPCM,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: uint16(bitsPerSample),
	}
}

// PCM validates the descriptor and returns the matching pcm.Format.
func (f Format) PCM() (pcm.Format, error) {
	if f.AudioFormat != FormatPCM {
		return pcm.Format{}, fmt.Errorf("format code %d: %w", f.AudioFormat, ErrNotPCM)
	}
	depth, err := pcm.ParseBitDepth(int(f.BitsPerSample))
	if err != nil {
		return pcm.Format{}, err
	}
	pf := pcm.Format{Channels: int(f.Channels), SampleRate: int(f.SampleRate), Depth: depth}
	if err := pf.Validate(); err != nil {
		return pcm.Format{}, err
	}
	return pf, nil
}

// readFormat reads the fmt chunk held by b.
func readFormat(b riff.Block, size uint32) (Format, error) {
	if size < fmtSize {
		return Format{}, fmt.Errorf("%d bytes: %w", size, ErrShortFmtChunk)
	}
	buf, err := b.ReadBytes(riff.HeaderSize, fmtSize)
	if err != nil {
		return Format{}, err
	}
	le := binary.LittleEndian
	return Format{
		AudioFormat:   le.Uint16(buf[0:]),
		Channels:      le.Uint16(buf[2:]),
		SampleRate:    le.Uint32(buf[4:]),
		ByteRate:      le.Uint32(buf[8:]),
		BlockAlign:    le.Uint16(buf[12:]),
		BitsPerSample: le.Uint16(buf[14:]),
	}, nil
}

// writeFormat writes a complete fmt chunk at b and returns the absolute
// offset just past it.
func writeFormat(b riff.Block, f Format) (int64, error) {
	if err := b.WriteHeader(FmtTag, fmtSize); err != nil {
		return 0, err
	}
	fields := []struct {
		pos int64
		v   uint32
		n   int
	}{
		{8, uint32(f.AudioFormat), 2},
		{10, uint32(f.Channels), 2},
		{12, f.SampleRate, 4},
		{16, f.ByteRate, 4},
		{20, uint32(f.BlockAlign), 2},
		{22, uint32(f.BitsPerSample), 2},
	}
	for _, fl := range fields {
		var err error
		if fl.n == 2 {
			err = b.WriteUint16(fl.pos, uint16(fl.v))
		} else {
			err = b.WriteUint32(fl.pos, fl.v)
		}
		if err != nil {
			return 0, err
		}
	}
	return b.Position + riff.HeaderSize + fmtSize, nil
}
