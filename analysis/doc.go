// SPDX-License-Identifier: EPL-2.0

// Package analysis holds the spectral stages of a pipeline: regrouping
// snippets into fixed-size blocks, windowing, forward and inverse FFT and
// magnitude extraction.
//
// A typical spectrum chain is
//
//	rechunk, _ := analysis.Rechunk(256)
//	stage := pipeline.Chain(pipeline.Chain(rechunk, analysis.Window(analysis.Hann(0.5))),
//		pipeline.Chain(analysis.FFT(false), analysis.ExtractSpectrum()))
//
// which Spectrum builds in one call. Transforms are computed with
// github.com/mjibson/go-dsp/fft and only accept power-of-two frame counts.
package analysis
