// SPDX-License-Identifier: EPL-2.0

// Package riff reads and writes the RIFF container layout: a top-level
// "RIFF" record holding a form type and a sequence of tagged, length-prefixed
// chunks. All integers are little-endian.
//
// Every accessor addresses the underlying file by absolute offset, so blocks
// can be read and patched in any order. DataBlock streams a chunk payload as
// DataChunks tagged with their offset, and its Writer stores the final size
// when closed.
package riff
