// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	// ErrUnsupportedBitDepth is returned for bit depths other than 8, 16, 24
	// and 32.
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")
	// ErrInvalidFormat indicates a channel count or sample rate below one.
	ErrInvalidFormat = errors.New("invalid PCM format")
	// ErrNegativeStart is returned when a snippet would be written before the
	// start of the data chunk.
	ErrNegativeStart = errors.New("snippet starts before the stream")
)
