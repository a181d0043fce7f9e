// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"math"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/pipeline"
)

// WindowFunc returns the coefficient for frame i of n.
type WindowFunc func(i, n int) float64

// Default window parameters.
const (
	DefaultBlackmanAlpha = 0.16
	DefaultHannAlpha     = 0.5

	// hannCeiling keeps Hann coefficients away from 1 so that an inverse
	// window never divides by a value derived from an exact edge.
	hannCeiling = 0.9999
)

// Blackman is the Blackman window with parameter a.
func Blackman(a float64) WindowFunc {
	return func(i, n int) float64 {
		x := float64(i) / float64(n)
		return (1-a)/2 - 0.5*math.Cos(2*math.Pi*x) + (a/2)*math.Cos(4*math.Pi*x)
	}
}

// Hann is the generalized Hann window with parameter a, capped at 0.9999.
func Hann(a float64) WindowFunc {
	return func(i, n int) float64 {
		x := float64(i) / float64(n)
		return min(hannCeiling, a-(1-a)*math.Cos(2*math.Pi*x))
	}
}

// Rectangular leaves samples unchanged.
func Rectangular() WindowFunc {
	return func(int, int) float64 { return 1 }
}

// Window multiplies every value of frame i by f(i, frames).
func Window(f WindowFunc) pipeline.Stage[audio.Snippet, audio.Snippet] {
	return applyWindow(f, func(v, c float64) float64 { return v * c })
}

// InverseWindow divides every value of frame i by f(i, frames).
func InverseWindow(f WindowFunc) pipeline.Stage[audio.Snippet, audio.Snippet] {
	return applyWindow(f, func(v, c float64) float64 { return v / c })
}

func applyWindow(f WindowFunc, op func(v, c float64) float64) pipeline.Stage[audio.Snippet, audio.Snippet] {
	return pipeline.Map(func(s audio.Snippet) (audio.Snippet, error) {
		frames := s.Sample.Frames()
		out := s.Sample.Clone()
		for i := range frames {
			c := f(i, frames)
			frame := out.Frame(i)
			for ch := range frame {
				frame[ch] = op(frame[ch], c)
			}
		}
		return audio.Snippet{Start: s.Start, Sample: out}, nil
	})
}
