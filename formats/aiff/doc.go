// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the file and emits the
// samples as audio.Snippets at audio.InternalRate, the same shape the wav
// package produces. Bit depths of 8, 16, 24 and 32 bits are accepted.
//
//	f, _ := os.Open("audio.aif")
//	stream, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	defer stream.Close()
//
// Snippet starts are derived from the number of file frames read, so they are
// exact regardless of the rate conversion applied to the samples.
package aiff
