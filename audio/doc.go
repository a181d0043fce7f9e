// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory audio model shared by every stage.
//
// A Sample is a block of frames at InternalRate (48 kHz). Each frame holds
// one float64 per channel, nominally in [-1, 1]. The values are stored
// interleaved in a single slice; Frame and Channel return views without
// copying:
//
//	s, _ := audio.FromChannels([][]float64{left, right})
//	for i, v := range s.Channel(0).All() {
//	    // ...
//	}
//
// A Snippet pairs a Sample with its start time in ticks, where one second is
// TickResolution ticks. Timestamps are independent of any file sample rate.
//
// # Rate Conversion
//
// RateConverter retargets frames between rates by repeating or dropping whole
// frames, never interpolating. Its counters persist across calls so a stream
// split into arbitrary chunks converts exactly like the concatenated input.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("take1.wav")
package audio
