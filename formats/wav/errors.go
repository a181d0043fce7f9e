// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile       = errors.New("not a WAV file")
	ErrMissingFmtChunk  = errors.New("not a valid WAV: missing fmt chunk")
	ErrMissingDataChunk = errors.New("not a valid WAV: missing data chunk")
	ErrDuplicateChunk   = errors.New("not a valid WAV: duplicate chunk")
	ErrShortFmtChunk    = errors.New("not a valid WAV: fmt chunk too short")
	ErrNotPCM           = errors.New("audio format is not linear PCM")
	ErrWriterClosed     = errors.New("WAV writer already closed")
)
