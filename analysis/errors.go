// SPDX-License-Identifier: EPL-2.0

package analysis

import "errors"

var (
	// ErrUnsupportedFFTSize is returned when a Sample's frame count is not a
	// power of two.
	ErrUnsupportedFFTSize = errors.New("FFT size must be a power of two")
	// ErrOddChannelCount is returned when channels are expected in
	// (real, imaginary) pairs.
	ErrOddChannelCount = errors.New("channels must come in real/imaginary pairs")
	// ErrInvalidChunkSize is returned for a rechunk size below one frame.
	ErrInvalidChunkSize = errors.New("chunk size must be at least one frame")
)
