// SPDX-License-Identifier: EPL-2.0

package riff

import "errors"

var (
	// ErrNotRIFF indicates the file does not start with a RIFF record.
	ErrNotRIFF = errors.New("not a RIFF file")
	// ErrTruncatedChunk indicates a chunk header or payload runs past the end
	// of the RIFF record.
	ErrTruncatedChunk = errors.New("truncated RIFF chunk")
	// ErrChunkNotFound indicates no chunk with the requested tag exists.
	ErrChunkNotFound = errors.New("RIFF chunk not found")
	// ErrReadOnly indicates a write was attempted on a handle that cannot be
	// written to.
	ErrReadOnly = errors.New("RIFF file is read only")
	// ErrChunkTooLarge indicates a payload that does not fit a uint32 size.
	ErrChunkTooLarge = errors.New("RIFF chunk exceeds 4 GiB")
	// ErrInvalidTag indicates a tag that is not exactly four bytes.
	ErrInvalidTag = errors.New("RIFF tag must be 4 bytes")
)
