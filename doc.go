// SPDX-License-Identifier: EPL-2.0

// Package clicksplat extracts transients ("clicks") from recordings and turns
// each one into a sequence of magnitude spectra, ready to be drawn.
//
// The work is a chain of pull-based pipeline stages:
//
//	decode -> detect clicks -> keep every n-th -> per click: rechunk, window, FFT, magnitudes
//
// Every selected click yields one Group: the captured click and its spectral
// frames, handed to a Renderer.
//
// # Supported Formats
//
// Input containers are decoded to snippets at audio.InternalRate:
//   - WAV (linear PCM 8, 16, 24 and 32-bit) via formats/wav
//   - AIFF (linear PCM) via formats/aiff
//
// # Quick Start
//
//	p := clicksplat.Processor{Config: clicksplat.DefaultConfig()}
//	res, err := p.ProcessFile(ctx, "recording.wav", clicksplat.RendererFunc(
//		func(ctx context.Context, g clicksplat.Group) error {
//			fmt.Println(g.Start, len(g.Frames))
//			return nil
//		}))
//
// For finer control compose the stages of the pipeline, audio, pcm,
// analysis and detect packages directly; ExtractClickSpectra shows how.
package clicksplat
