// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// BitDepth is one of the supported integer PCM sample widths.
type BitDepth uint8

const (
	Depth8  BitDepth = 8
	Depth16 BitDepth = 16
	Depth24 BitDepth = 24
	Depth32 BitDepth = 32
)

// Scale factors mapping integer samples onto [-1, 1).
const (
	Scale8  = 128.0
	Scale16 = 32768.0
	Scale24 = 8388608.0
	Scale32 = 2147483648.0

	// LegacyScale16 halves the amplitude of 16-bit data. Files analysed with
	// older tooling used it; see WithLegacy16BitScale.
	LegacyScale16 = 65536.0

	// offset8 is the zero level of unsigned 8-bit data.
	offset8 = 127
)

// ParseBitDepth validates a bits-per-sample value read from a file header.
func ParseBitDepth(bits int) (BitDepth, error) {
	switch bits {
	case 8, 16, 24, 32:
		return BitDepth(bits), nil
	}
	return 0, fmt.Errorf("%d bits: %w", bits, ErrUnsupportedBitDepth)
}

// Bytes is the size of one sample value.
func (d BitDepth) Bytes() int { return int(d) / 8 }

// Scale is the default integer scale for the depth.
func (d BitDepth) Scale() float64 {
	switch d {
	case Depth8:
		return Scale8
	case Depth16:
		return Scale16
	case Depth24:
		return Scale24
	default:
		return Scale32
	}
}

func (d BitDepth) String() string { return fmt.Sprintf("%d-bit", uint8(d)) }

// codec converts between little-endian integer PCM and floats.
type codec struct {
	depth BitDepth
	scale float64
}

// decode fills dst with one float per sample in src.
func (c codec) decode(src []byte, dst []float64) {
	switch c.depth {
	case Depth8:
		for i, b := range src {
			dst[i] = (float64(b) - offset8) / c.scale
		}
	case Depth16:
		for i := range dst {
			v := int16(binary.LittleEndian.Uint16(src[2*i:]))
			dst[i] = float64(v) / c.scale
		}
	case Depth24:
		for i := range dst {
			b := src[3*i : 3*i+3]
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v -= 1 << 24
			}
			dst[i] = float64(v) / c.scale
		}
	case Depth32:
		for i := range dst {
			v := int32(binary.LittleEndian.Uint32(src[4*i:]))
			dst[i] = float64(v) / c.scale
		}
	}
}

// encode writes src into dst, which must hold len(src)*depth.Bytes() bytes.
// Values are rounded and clamped to the integer range, never wrapped.
func (c codec) encode(src []float64, dst []byte) {
	switch c.depth {
	case Depth8:
		for i, v := range src {
			dst[i] = uint8(clampRound(v*c.scale+offset8, 0, math.MaxUint8))
		}
	case Depth16:
		for i, v := range src {
			s := clampRound(v*c.scale, math.MinInt16, math.MaxInt16)
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(int16(s)))
		}
	case Depth24:
		for i, v := range src {
			s := uint32(int32(clampRound(v*c.scale, -1<<23, 1<<23-1)))
			dst[3*i] = byte(s)
			dst[3*i+1] = byte(s >> 8)
			dst[3*i+2] = byte(s >> 16)
		}
	case Depth32:
		for i, v := range src {
			s := clampRound(v*c.scale, math.MinInt32, math.MaxInt32)
			binary.LittleEndian.PutUint32(dst[4*i:], uint32(int32(s)))
		}
	}
}

func clampRound(v, lo, hi float64) int64 {
	v = math.Round(v)
	if v < lo {
		v = lo
	} else if v > hi {
		v = hi
	}
	return int64(v)
}
