// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes linear PCM WAV files.
//
// A WAV file is a RIFF record of form "WAVE" holding exactly one "fmt "
// chunk and one "data" chunk. Other chunks are skipped. Bit depths of 8, 16,
// 24 and 32 bits are supported for any channel count and sample rate.
//
// # Reading
//
// Open locates the chunks and validates the format. Stream decodes the data
// chunk into audio.Snippets at audio.InternalRate:
//
//	f, err := wav.Open("input.wav")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	stream, err := f.Stream(wav.DefaultChunkFrames)
//
// Decoder adapts the same path to audio.Decoder for use with an
// audio.Registry.
//
// # Writing
//
// Create writes the headers with zero sizes. The Writer accepts raw
// riff.DataChunks, or Snippets through the sink returned by Snippets, and
// stores the final sizes on Close:
//
//	w, err := wav.Create("out.wav", wav.NewFormat(1, 44100, 16))
//	if err != nil {
//	    return err
//	}
//	sink, _ := w.Snippets()
//	err = pipeline.Drain(ctx, stream, sink)
//
// # Errors
//
// Malformed files are reported with ErrNotWavFile, ErrMissingFmtChunk,
// ErrMissingDataChunk or ErrDuplicateChunk. Structural errors from the
// chunk walk, such as riff.ErrTruncatedChunk, are passed through.
// Non-PCM data fails with ErrNotPCM.
package wav
