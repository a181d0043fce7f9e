// SPDX-License-Identifier: EPL-2.0

// Package pcm converts between integer PCM bytes and audio.Snippets.
//
// Decoding maps each integer to a float with a fixed scale per bit depth:
//
//	 8-bit unsigned  (b - 127) / 128
//	16-bit signed    v / 32768
//	24-bit signed    v / 8388608, three little-endian bytes
//	32-bit signed    v / 2147483648
//
// Encoding is the inverse, rounded to the nearest integer and clamped to the
// representable range. WithLegacy16BitScale switches 16-bit data to a scale
// of 65536 for compatibility with files written by older tools.
//
// Decoder and Encoder also convert between the file sample rate and
// audio.InternalRate by repeating or dropping whole frames.
package pcm
